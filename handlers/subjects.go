package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"acadtrack_backend/apperr"
	"acadtrack_backend/models"
)

type SubjectHandler struct {
	db *sql.DB
}

func NewSubjectHandler(db *sql.DB) *SubjectHandler {
	return &SubjectHandler{db: db}
}

func (h *SubjectHandler) List(c *gin.Context) {
	rows, err := h.db.Query(`SELECT id, name, is_active, created_at FROM subjects ORDER BY id ASC`)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch subjects"))
		return
	}
	defer rows.Close()

	subjects := make([]models.Subject, 0)
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.IsActive, &s.CreatedAt); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan subject"))
			return
		}
		subjects = append(subjects, s)
	}

	c.JSON(http.StatusOK, subjects)
}

func (h *SubjectHandler) Create(c *gin.Context) {
	var req models.CreateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Name required"))
		return
	}

	name, ok := cleanName(req.Name)
	if !ok {
		respondError(c, apperr.New(apperr.InvalidInput, "Name required"))
		return
	}

	var id int
	if err := h.db.QueryRow(`INSERT INTO subjects (name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
		respondError(c, apperr.Wrap(err, "Failed to create subject"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Created", "id": id})
}

func (h *SubjectHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid subject id"))
		return
	}

	var req models.UpdateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid payload"))
		return
	}

	fields := []string{}
	values := []interface{}{}

	if req.Name != nil {
		name, ok := cleanName(*req.Name)
		if !ok {
			respondError(c, apperr.New(apperr.InvalidInput, "Name required"))
			return
		}
		values = append(values, name)
		fields = append(fields, fmt.Sprintf("name = $%d", len(values)))
	}
	if req.IsActive != nil {
		values = append(values, *req.IsActive)
		fields = append(fields, fmt.Sprintf("is_active = $%d", len(values)))
	}

	if len(fields) == 0 {
		respondError(c, apperr.New(apperr.InvalidInput, "Nothing to update"))
		return
	}

	values = append(values, id)
	query := fmt.Sprintf(`UPDATE subjects SET %s WHERE id = $%d`, strings.Join(fields, ", "), len(values))

	result, err := h.db.Exec(query, values...)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to update subject"))
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		respondError(c, apperr.New(apperr.NotFound, "Subject not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid subject id"))
		return
	}

	result, err := h.db.Exec(`DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to delete subject"))
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		respondError(c, apperr.New(apperr.NotFound, "Subject not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
