package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"acadtrack_backend/apperr"
	"acadtrack_backend/authz"
	"acadtrack_backend/db"
	"acadtrack_backend/models"
)

type AssignmentHandler struct {
	db    *sql.DB
	authz *authz.Authorizer
}

func NewAssignmentHandler(database *sql.DB, az *authz.Authorizer) *AssignmentHandler {
	return &AssignmentHandler{db: database, authz: az}
}

func (h *AssignmentHandler) List(c *gin.Context) {
	rows, err := h.db.Query(`
        SELECT la.id,
               la.lecturer_id, u.name AS lecturer_name, u.email AS lecturer_email,
               la.batch_id, b.name AS batch_name,
               la.subject_id, s.name AS subject_name,
               la.created_at
        FROM lecturer_assignments la
        JOIN users u ON u.id = la.lecturer_id
        JOIN batches b ON b.id = la.batch_id
        JOIN subjects s ON s.id = la.subject_id
        ORDER BY la.id ASC
    `)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch assignments"))
		return
	}
	defer rows.Close()

	assignments := make([]models.AssignmentRow, 0)
	for rows.Next() {
		var a models.AssignmentRow
		if err := rows.Scan(&a.ID, &a.LecturerID, &a.LecturerName, &a.LecturerEmail,
			&a.BatchID, &a.BatchName, &a.SubjectID, &a.SubjectName, &a.CreatedAt); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan assignment"))
			return
		}
		assignments = append(assignments, a)
	}

	c.JSON(http.StatusOK, assignments)
}

// Create adds an assignment triple. The lecturer must be an active lecturer
// account and the batch/subject active rows; the triple itself is unique.
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid payload"))
		return
	}
	if req.LecturerID == 0 || req.BatchID == 0 || req.SubjectID == 0 {
		respondError(c, apperr.New(apperr.InvalidInput, "Missing fields"))
		return
	}

	if err := h.authz.ActiveLecturer(req.LecturerID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.authz.ActiveBatch(req.BatchID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.authz.ActiveSubject(req.SubjectID); err != nil {
		respondError(c, err)
		return
	}

	_, err := h.db.Exec(
		`INSERT INTO lecturer_assignments (lecturer_id, batch_id, subject_id) VALUES ($1, $2, $3)`,
		req.LecturerID, req.BatchID, req.SubjectID,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			respondError(c, apperr.New(apperr.Conflict, "Already assigned"))
			return
		}
		respondError(c, apperr.Wrap(err, "Failed to create assignment"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Assigned"})
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid assignment id"))
		return
	}

	result, err := h.db.Exec(`DELETE FROM lecturer_assignments WHERE id = $1`, id)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to delete assignment"))
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		respondError(c, apperr.New(apperr.NotFound, "Assignment not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
