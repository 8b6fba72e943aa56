// Package authz decides whether an authenticated caller may act on a given
// batch, subject or student. Lecturer scope is derived entirely from
// lecturer_assignments rows; students only ever reach their own rows; admin
// is unconditional for catalog data and barred from student data.
//
// Every check runs after request-shape validation and before any store
// mutation, so a scope failure never leaves a partial write behind.
package authz

import (
	"database/sql"

	"acadtrack_backend/apperr"
)

type Authorizer struct {
	db *sql.DB
}

func New(db *sql.DB) *Authorizer {
	return &Authorizer{db: db}
}

// LecturerAssigned verifies the (lecturer, batch, subject) assignment triple.
func (a *Authorizer) LecturerAssigned(lecturerID, batchID, subjectID int) error {
	var one int
	err := a.db.QueryRow(
		`SELECT 1 FROM lecturer_assignments WHERE lecturer_id = $1 AND batch_id = $2 AND subject_id = $3 LIMIT 1`,
		lecturerID, batchID, subjectID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return apperr.New(apperr.Forbidden, "Forbidden scope")
	}
	if err != nil {
		return apperr.Wrap(err, "Failed to verify lecturer scope")
	}
	return nil
}

// LecturerHasBatch verifies the lecturer holds at least one assignment to the
// batch, regardless of subject. Used for student listing and enrollment.
func (a *Authorizer) LecturerHasBatch(lecturerID, batchID int) error {
	var one int
	err := a.db.QueryRow(
		`SELECT 1 FROM lecturer_assignments WHERE lecturer_id = $1 AND batch_id = $2 LIMIT 1`,
		lecturerID, batchID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return apperr.New(apperr.Forbidden, "Forbidden batch")
	}
	if err != nil {
		return apperr.Wrap(err, "Failed to verify lecturer batch")
	}
	return nil
}

// StudentEnrolled verifies the student's enrollment in the batch. Failure is
// invalid input, not a scope violation: the caller named a student that does
// not belong to the batch.
func (a *Authorizer) StudentEnrolled(studentID, batchID int) error {
	var one int
	err := a.db.QueryRow(
		`SELECT 1 FROM batch_students WHERE student_id = $1 AND batch_id = $2 LIMIT 1`,
		studentID, batchID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return apperr.New(apperr.InvalidInput, "Student not enrolled in this batch")
	}
	if err != nil {
		return apperr.Wrap(err, "Failed to verify enrollment")
	}
	return nil
}

// EnrolledStudentSet returns the ids of students currently enrolled in the
// batch, for the bulk attendance skip-invalid-rows policy.
func (a *Authorizer) EnrolledStudentSet(batchID int) (map[int]bool, error) {
	rows, err := a.db.Query(`SELECT student_id FROM batch_students WHERE batch_id = $1`, batchID)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to load batch enrollment")
	}
	defer rows.Close()

	set := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Wrap(err, "Failed to scan enrollment")
		}
		set[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(err, "Failed to load batch enrollment")
	}
	return set, nil
}

// ActiveBatch verifies the batch exists and is active.
func (a *Authorizer) ActiveBatch(batchID int) error {
	return a.activeRow("batches", "Invalid batch", batchID)
}

// ActiveSubject verifies the subject exists and is active.
func (a *Authorizer) ActiveSubject(subjectID int) error {
	return a.activeRow("subjects", "Invalid subject", subjectID)
}

func (a *Authorizer) activeRow(table, message string, id int) error {
	var one int
	// table is a compile-time constant from the two callers above
	err := a.db.QueryRow(`SELECT 1 FROM `+table+` WHERE id = $1 AND is_active LIMIT 1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return apperr.New(apperr.InvalidInput, message)
	}
	if err != nil {
		return apperr.Wrap(err, "Failed to verify "+table)
	}
	return nil
}

// ActiveLecturer verifies the user exists, is active and has the lecturer role.
func (a *Authorizer) ActiveLecturer(userID int) error {
	var one int
	err := a.db.QueryRow(
		`SELECT 1 FROM users WHERE id = $1 AND role = 'lecturer' AND is_active LIMIT 1`, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return apperr.New(apperr.InvalidInput, "Invalid lecturer")
	}
	if err != nil {
		return apperr.Wrap(err, "Failed to verify lecturer")
	}
	return nil
}

// UserRole returns the role of an existing user, or NotFound.
func (a *Authorizer) UserRole(userID int) (string, error) {
	var role string
	err := a.db.QueryRow(`SELECT role FROM users WHERE id = $1 LIMIT 1`, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return "", apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return "", apperr.Wrap(err, "Failed to load user")
	}
	return role, nil
}
