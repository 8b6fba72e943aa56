package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"acadtrack_backend/apperr"
	"acadtrack_backend/authz"
	"acadtrack_backend/models"
	"acadtrack_backend/report"
)

type AttendanceHandler struct {
	db    *sql.DB
	authz *authz.Authorizer
}

func NewAttendanceHandler(database *sql.DB, az *authz.Authorizer) *AttendanceHandler {
	return &AttendanceHandler{db: database, authz: az}
}

// Get returns the saved sheet for one (date, batch, subject) session.
func (h *AttendanceHandler) Get(c *gin.Context) {
	ident := identity(c)

	date := c.Query("date")
	batchID, berr := strconv.Atoi(c.Query("batch_id"))
	subjectID, serr := strconv.Atoi(c.Query("subject_id"))
	if !validDate(date) || berr != nil || serr != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Missing filters"))
		return
	}

	if err := h.authz.LecturerAssigned(ident.UserID, batchID, subjectID); err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.db.Query(`
        SELECT student_id, status
        FROM attendance
        WHERE date = $1 AND batch_id = $2 AND subject_id = $3
        ORDER BY student_id ASC
    `, date, batchID, subjectID)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch attendance"))
		return
	}
	defer rows.Close()

	records := make([]models.AttendanceStatusRow, 0)
	for rows.Next() {
		var r models.AttendanceStatusRow
		if err := rows.Scan(&r.StudentID, &r.Status); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan attendance"))
			return
		}
		records = append(records, r)
	}

	c.JSON(http.StatusOK, records)
}

// Save bulk-upserts a session sheet. Entries for students not enrolled in the
// batch are skipped silently; the request still succeeds. Re-saving the same
// (date, batch, subject, student) key overwrites status and recording
// lecturer.
func (h *AttendanceHandler) Save(c *gin.Context) {
	ident := identity(c)

	var req models.SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid payload"))
		return
	}
	if !validDate(req.Date) || req.BatchID == 0 || req.SubjectID == 0 || req.Records == nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid payload"))
		return
	}

	if err := h.authz.LecturerAssigned(ident.UserID, req.BatchID, req.SubjectID); err != nil {
		respondError(c, err)
		return
	}

	enrolled, err := h.authz.EnrolledStudentSet(req.BatchID)
	if err != nil {
		respondError(c, err)
		return
	}

	saved := 0
	for _, entry := range req.Records {
		if entry.StudentID == 0 || !enrolled[entry.StudentID] {
			continue
		}

		_, err := h.db.Exec(`
            INSERT INTO attendance (date, batch_id, subject_id, lecturer_id, student_id, status)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (date, batch_id, subject_id, student_id)
            DO UPDATE SET status = EXCLUDED.status, lecturer_id = EXCLUDED.lecturer_id
        `, req.Date, req.BatchID, req.SubjectID, ident.UserID, entry.StudentID, entry.Status)
		if err != nil {
			respondError(c, apperr.Wrap(err, "Failed to save attendance"))
			return
		}
		saved++
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Attendance saved", "saved": saved})
}

// Summary returns the calling student's own present/total aggregate.
func (h *AttendanceHandler) Summary(c *gin.Context) {
	ident := identity(c)

	var total, present int
	err := h.db.QueryRow(`
        SELECT COUNT(*), COUNT(*) FILTER (WHERE status)
        FROM attendance
        WHERE student_id = $1
    `, ident.UserID).Scan(&total, &present)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch attendance summary"))
		return
	}

	c.JSON(http.StatusOK, models.StudentAttendanceSummary{
		Percent: report.Percent(present, total),
		Total:   total,
		Present: present,
	})
}

// Details returns the calling student's paged attendance history, newest
// first, optionally restricted to one month. Limit defaults to 50, capped at
// 200.
func (h *AttendanceHandler) Details(c *gin.Context) {
	ident := identity(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, apperr.New(apperr.InvalidInput, "Invalid limit"))
			return
		}
		if n > 200 {
			n = 200
		}
		limit = n
	}

	where := "a.student_id = $1"
	params := []interface{}{ident.UserID}

	if month := c.Query("month"); month != "" {
		start, end, err := report.MonthRange(month)
		if err != nil {
			respondError(c, apperr.New(apperr.InvalidInput, "Invalid month. Use YYYY-MM"))
			return
		}
		params = append(params, start, end)
		where += " AND a.date >= $2 AND a.date < $3"
	}

	params = append(params, limit)
	limitPlaceholder := strconv.Itoa(len(params))

	rows, err := h.db.Query(`
        SELECT a.id, to_char(a.date, 'YYYY-MM-DD'),
               a.batch_id, b.name AS batch_name,
               a.subject_id, s.name AS subject_name,
               a.lecturer_id, COALESCE(l.name, '') AS lecturer_name,
               a.status
        FROM attendance a
        JOIN batches b ON b.id = a.batch_id
        JOIN subjects s ON s.id = a.subject_id
        LEFT JOIN users l ON l.id = a.lecturer_id
        WHERE `+where+`
        ORDER BY a.date DESC, a.id DESC
        LIMIT $`+limitPlaceholder, params...)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch attendance details"))
		return
	}
	defer rows.Close()

	details := make([]models.AttendanceDetailRow, 0)
	for rows.Next() {
		var d models.AttendanceDetailRow
		if err := rows.Scan(&d.ID, &d.Date, &d.BatchID, &d.BatchName,
			&d.SubjectID, &d.SubjectName, &d.LecturerID, &d.LecturerName, &d.Status); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan attendance detail"))
			return
		}
		details = append(details, d)
	}

	c.JSON(http.StatusOK, details)
}
