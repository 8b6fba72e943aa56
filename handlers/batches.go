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

type BatchHandler struct {
	db *sql.DB
}

func NewBatchHandler(db *sql.DB) *BatchHandler {
	return &BatchHandler{db: db}
}

// List returns all batches, active or not. Admin only.
func (h *BatchHandler) List(c *gin.Context) {
	rows, err := h.db.Query(`SELECT id, name, is_active, created_at FROM batches ORDER BY id ASC`)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch batches"))
		return
	}
	defer rows.Close()

	batches := make([]models.Batch, 0)
	for rows.Next() {
		var b models.Batch
		if err := rows.Scan(&b.ID, &b.Name, &b.IsActive, &b.CreatedAt); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan batch"))
			return
		}
		batches = append(batches, b)
	}

	c.JSON(http.StatusOK, batches)
}

func (h *BatchHandler) Create(c *gin.Context) {
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
	if err := h.db.QueryRow(`INSERT INTO batches (name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
		respondError(c, apperr.Wrap(err, "Failed to create batch"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Created", "id": id})
}

// Update applies a partial {name?, is_active?} patch. The active flag is an
// explicit boolean from the caller, never a server-side flip.
func (h *BatchHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid batch id"))
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
	query := fmt.Sprintf(`UPDATE batches SET %s WHERE id = $%d`, strings.Join(fields, ", "), len(values))

	result, err := h.db.Exec(query, values...)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to update batch"))
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		respondError(c, apperr.New(apperr.NotFound, "Batch not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

func (h *BatchHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid batch id"))
		return
	}

	result, err := h.db.Exec(`DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to delete batch"))
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		respondError(c, apperr.New(apperr.NotFound, "Batch not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
