package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"acadtrack_backend/apperr"
	"acadtrack_backend/authz"
	"acadtrack_backend/models"
)

type MarkHandler struct {
	db    *sql.DB
	authz *authz.Authorizer
}

func NewMarkHandler(database *sql.DB, az *authz.Authorizer) *MarkHandler {
	return &MarkHandler{db: database, authz: az}
}

// Create appends one exam entry within the lecturer's scope. Marks are
// append-only: duplicates of the same (student, subject, exam_type, date)
// are permitted.
func (h *MarkHandler) Create(c *gin.Context) {
	ident := identity(c)

	var req models.CreateMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid payload"))
		return
	}
	if req.BatchID == 0 || req.StudentID == 0 || req.SubjectID == 0 ||
		trimmed(req.ExamType) == "" || req.Score == nil || !validDate(req.Date) {
		respondError(c, apperr.New(apperr.InvalidInput, "Missing required fields"))
		return
	}

	if err := h.authz.LecturerAssigned(ident.UserID, req.BatchID, req.SubjectID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.authz.StudentEnrolled(req.StudentID, req.BatchID); err != nil {
		respondError(c, err)
		return
	}

	_, err := h.db.Exec(`
        INSERT INTO marks (batch_id, student_id, subject_id, exam_type, score, date)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, req.BatchID, req.StudentID, req.SubjectID, trimmed(req.ExamType), *req.Score, req.Date)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to save marks"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Marks saved"})
}

// List dispatches by role: students see their own rows only, lecturers see
// rows inside their assignment set with optional filters, admin has no access
// to student-derived data.
func (h *MarkHandler) List(c *gin.Context) {
	ident := identity(c)

	switch ident.Role {
	case models.RoleStudent:
		h.listOwn(c, ident.UserID)
	case models.RoleLecturer:
		h.listScoped(c, ident.UserID)
	case models.RoleAdmin:
		respondError(c, apperr.New(apperr.Forbidden, "Forbidden"))
	default:
		respondError(c, apperr.New(apperr.Forbidden, "Forbidden"))
	}
}

func (h *MarkHandler) listOwn(c *gin.Context, studentID int) {
	rows, err := h.db.Query(`
        SELECT m.id, m.batch_id, b.name AS batch_name, m.student_id,
               m.subject_id, s.name AS subject_name,
               m.exam_type, m.score, to_char(m.date, 'YYYY-MM-DD')
        FROM marks m
        JOIN subjects s ON s.id = m.subject_id
        JOIN batches b ON b.id = m.batch_id
        WHERE m.student_id = $1
        ORDER BY m.date DESC, m.id DESC
    `, studentID)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch marks"))
		return
	}
	defer rows.Close()

	marks := make([]models.MarkRow, 0)
	for rows.Next() {
		var m models.MarkRow
		if err := rows.Scan(&m.ID, &m.BatchID, &m.BatchName, &m.StudentID,
			&m.SubjectID, &m.SubjectName, &m.ExamType, &m.Score, &m.Date); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan mark"))
			return
		}
		marks = append(marks, m)
	}

	c.JSON(http.StatusOK, marks)
}

func (h *MarkHandler) listScoped(c *gin.Context, lecturerID int) {
	where := []string{}
	params := []interface{}{}

	addFilter := func(column, raw string) bool {
		if raw == "" {
			return true
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, apperr.New(apperr.InvalidInput, "Invalid "+column))
			return false
		}
		params = append(params, id)
		where = append(where, fmt.Sprintf("m.%s = $%d", column, len(params)))
		return true
	}

	if !addFilter("batch_id", c.Query("batch_id")) {
		return
	}
	if !addFilter("subject_id", c.Query("subject_id")) {
		return
	}
	if !addFilter("student_id", c.Query("student_id")) {
		return
	}

	// every row must fall inside the lecturer's assignment set
	params = append(params, lecturerID)
	where = append(where, fmt.Sprintf(`EXISTS (
        SELECT 1 FROM lecturer_assignments la
        WHERE la.lecturer_id = $%d AND la.batch_id = m.batch_id AND la.subject_id = m.subject_id
    )`, len(params)))

	rows, err := h.db.Query(`
        SELECT m.id, m.batch_id, b.name AS batch_name,
               m.student_id, u.name AS student_name,
               m.subject_id, s.name AS subject_name,
               m.exam_type, m.score, to_char(m.date, 'YYYY-MM-DD')
        FROM marks m
        JOIN users u ON u.id = m.student_id
        JOIN subjects s ON s.id = m.subject_id
        JOIN batches b ON b.id = m.batch_id
        WHERE `+strings.Join(where, " AND ")+`
        ORDER BY m.date DESC, m.id DESC
    `, params...)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch marks"))
		return
	}
	defer rows.Close()

	marks := make([]models.MarkRow, 0)
	for rows.Next() {
		var m models.MarkRow
		if err := rows.Scan(&m.ID, &m.BatchID, &m.BatchName, &m.StudentID, &m.StudentName,
			&m.SubjectID, &m.SubjectName, &m.ExamType, &m.Score, &m.Date); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan mark"))
			return
		}
		marks = append(marks, m)
	}

	c.JSON(http.StatusOK, marks)
}
