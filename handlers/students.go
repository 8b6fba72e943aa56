package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"acadtrack_backend/apperr"
	"acadtrack_backend/authz"
	"acadtrack_backend/db"
	"acadtrack_backend/middleware"
	"acadtrack_backend/models"
)

// StudentHandler covers the lecturer-side student operations: listing a
// batch's roster and create-or-enroll by email.
type StudentHandler struct {
	db    *sql.DB
	authz *authz.Authorizer
}

func NewStudentHandler(database *sql.DB, az *authz.Authorizer) *StudentHandler {
	return &StudentHandler{db: database, authz: az}
}

// List returns the students enrolled in one of the lecturer's batches.
func (h *StudentHandler) List(c *gin.Context) {
	ident := identity(c)

	batchID, err := strconv.Atoi(c.Query("batch_id"))
	if err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "batch_id required"))
		return
	}

	if err := h.authz.LecturerHasBatch(ident.UserID, batchID); err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.db.Query(`
        SELECT u.id, u.name, u.email, u.is_active
        FROM batch_students bs
        JOIN users u ON u.id = bs.student_id
        WHERE bs.batch_id = $1 AND u.role = 'student'
        ORDER BY u.id ASC
    `, batchID)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch students"))
		return
	}
	defer rows.Close()

	students := make([]models.StudentRow, 0)
	for rows.Next() {
		var s models.StudentRow
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.IsActive); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan student"))
			return
		}
		students = append(students, s)
	}

	c.JSON(http.StatusOK, students)
}

// Enroll enrolls a student into one of the lecturer's batches. When the email
// belongs to an existing student account it is enrolled directly; otherwise a
// new student account is created and enrolled in one transaction.
func (h *StudentHandler) Enroll(c *gin.Context) {
	ident := identity(c)

	var req models.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "batch_id and valid email required"))
		return
	}
	if req.BatchID == 0 || !isValidEmail(req.Email) {
		respondError(c, apperr.New(apperr.InvalidInput, "batch_id and valid email required"))
		return
	}

	if err := h.authz.LecturerHasBatch(ident.UserID, req.BatchID); err != nil {
		respondError(c, err)
		return
	}

	email := trimmed(req.Email)

	var existingID int
	var existingRole models.Role
	err := h.db.QueryRow(`SELECT id, role FROM users WHERE email = $1 LIMIT 1`, email).
		Scan(&existingID, &existingRole)
	if err != nil && err != sql.ErrNoRows {
		respondError(c, apperr.Wrap(err, "Failed to look up student"))
		return
	}

	if err == nil {
		if existingRole != models.RoleStudent {
			respondError(c, apperr.New(apperr.InvalidInput, "This email is not a student account"))
			return
		}

		_, err := h.db.Exec(`INSERT INTO batch_students (batch_id, student_id) VALUES ($1, $2)`,
			req.BatchID, existingID)
		if err != nil {
			if db.IsUniqueViolation(err) {
				respondError(c, apperr.New(apperr.Conflict, "Student already enrolled"))
				return
			}
			respondError(c, apperr.Wrap(err, "Failed to enroll student"))
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Enrolled existing student", "student_id": existingID})
		return
	}

	// new account
	name, ok := cleanName(req.Name)
	if !ok {
		respondError(c, apperr.New(apperr.InvalidInput, "Name required"))
		return
	}
	if len(req.Password) < 6 {
		respondError(c, apperr.New(apperr.InvalidInput, "Password must be at least 6 characters"))
		return
	}

	passwordHash, err := middleware.HashPassword(req.Password)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to process password"))
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to create student"))
		return
	}

	var studentID int
	err = tx.QueryRow(
		`INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, 'student') RETURNING id`,
		name, email, passwordHash,
	).Scan(&studentID)
	if err != nil {
		tx.Rollback()
		if db.IsUniqueViolation(err) {
			respondError(c, apperr.New(apperr.Conflict, "Email already exists"))
			return
		}
		respondError(c, apperr.Wrap(err, "Failed to create student"))
		return
	}

	if _, err := tx.Exec(`INSERT INTO batch_students (batch_id, student_id) VALUES ($1, $2)`,
		req.BatchID, studentID); err != nil {
		tx.Rollback()
		respondError(c, apperr.Wrap(err, "Failed to enroll student"))
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(c, apperr.Wrap(err, "Failed to create student"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Student created & enrolled", "student_id": studentID})
}
