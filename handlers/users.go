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
	"acadtrack_backend/db"
	"acadtrack_backend/middleware"
	"acadtrack_backend/models"
)

// UserHandler manages lecturer accounts. Admin is setup-only: it never
// touches student accounts, and admin accounts are self-manage only.
type UserHandler struct {
	db    *sql.DB
	authz *authz.Authorizer
}

func NewUserHandler(database *sql.DB, az *authz.Authorizer) *UserHandler {
	return &UserHandler{db: database, authz: az}
}

// List returns lecturer accounts with their assignments aggregated into
// display strings. Only the lecturer listing exists; students are managed by
// lecturers, and admin accounts are not listed.
func (h *UserHandler) List(c *gin.Context) {
	role := strings.ToLower(c.DefaultQuery("role", "lecturer"))
	if role != string(models.RoleLecturer) {
		respondError(c, apperr.New(apperr.InvalidInput, "Only lecturer list is available"))
		return
	}

	rows, err := h.db.Query(`
        SELECT u.id, u.name, u.email, u.role, u.is_active, u.created_at,
               COALESCE(string_agg(DISTINCT b.name, ', '), '') AS batch_names,
               COALESCE(string_agg(DISTINCT s.name, ', '), '') AS subject_names,
               COALESCE(string_agg(DISTINCT b.name || ' - ' || s.name, ' | '), '') AS assignments
        FROM users u
        LEFT JOIN lecturer_assignments la ON la.lecturer_id = u.id
        LEFT JOIN batches b ON b.id = la.batch_id
        LEFT JOIN subjects s ON s.id = la.subject_id
        WHERE u.role = 'lecturer'
        GROUP BY u.id, u.name, u.email, u.role, u.is_active, u.created_at
        ORDER BY u.id ASC
    `)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch lecturers"))
		return
	}
	defer rows.Close()

	lecturers := make([]models.LecturerRow, 0)
	for rows.Next() {
		var l models.LecturerRow
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Role, &l.IsActive, &l.CreatedAt,
			&l.BatchNames, &l.SubjectNames, &l.Assignments); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan lecturer"))
			return
		}
		lecturers = append(lecturers, l)
	}

	c.JSON(http.StatusOK, lecturers)
}

// Create provisions a lecturer together with exactly one initial assignment.
// Both inserts run in one transaction: a failed assignment never leaves an
// orphaned user row behind.
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid payload"))
		return
	}

	name, ok := cleanName(req.Name)
	if !ok {
		respondError(c, apperr.New(apperr.InvalidInput, "Name required"))
		return
	}
	if !isValidEmail(req.Email) {
		respondError(c, apperr.New(apperr.InvalidInput, "Valid email required"))
		return
	}
	if len(req.Password) < 6 {
		respondError(c, apperr.New(apperr.InvalidInput, "Password must be at least 6 characters"))
		return
	}
	if req.BatchID == 0 || req.SubjectID == 0 {
		respondError(c, apperr.New(apperr.InvalidInput, "batch_id and subject_id are required"))
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

	passwordHash, err := middleware.HashPassword(req.Password)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to process password"))
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to create lecturer"))
		return
	}

	var lecturerID int
	err = tx.QueryRow(
		`INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, 'lecturer') RETURNING id`,
		name, trimmed(req.Email), passwordHash,
	).Scan(&lecturerID)
	if err != nil {
		tx.Rollback()
		if db.IsUniqueViolation(err) {
			respondError(c, apperr.New(apperr.Conflict, "Email already exists"))
			return
		}
		respondError(c, apperr.Wrap(err, "Failed to create lecturer"))
		return
	}

	_, err = tx.Exec(
		`INSERT INTO lecturer_assignments (lecturer_id, batch_id, subject_id) VALUES ($1, $2, $3)`,
		lecturerID, req.BatchID, req.SubjectID,
	)
	if err != nil {
		tx.Rollback()
		if db.IsUniqueViolation(err) {
			respondError(c, apperr.New(apperr.Conflict, "Already assigned"))
			return
		}
		respondError(c, apperr.Wrap(err, "Failed to create assignment"))
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(c, apperr.Wrap(err, "Failed to create lecturer"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Lecturer created", "id": lecturerID})
}

// Update patches a lecturer account, or the admin's own. Students are out of
// bounds, other admins are out of bounds, and an admin cannot disable itself.
func (h *UserHandler) Update(c *gin.Context) {
	ident := identity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid user id"))
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid payload"))
		return
	}

	targetRole, err := h.authz.UserRole(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if targetRole == string(models.RoleStudent) {
		respondError(c, apperr.New(apperr.Forbidden, "Admin cannot manage students"))
		return
	}
	if targetRole == string(models.RoleAdmin) && ident.UserID != id {
		respondError(c, apperr.New(apperr.Forbidden, "You can only update your own admin account"))
		return
	}
	if ident.UserID == id && req.IsActive != nil && !*req.IsActive {
		respondError(c, apperr.New(apperr.InvalidInput, "You cannot disable your own account"))
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
	if req.Email != nil {
		if !isValidEmail(*req.Email) {
			respondError(c, apperr.New(apperr.InvalidInput, "Valid email required"))
			return
		}
		values = append(values, trimmed(*req.Email))
		fields = append(fields, fmt.Sprintf("email = $%d", len(values)))
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
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(fields, ", "), len(values))

	if _, err := h.db.Exec(query, values...); err != nil {
		if db.IsUniqueViolation(err) {
			respondError(c, apperr.New(apperr.Conflict, "Email already exists"))
			return
		}
		respondError(c, apperr.Wrap(err, "Failed to update user"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// Delete removes a lecturer account. Assignments cascade in the store.
// Deleting self or any non-lecturer is rejected.
func (h *UserHandler) Delete(c *gin.Context) {
	ident := identity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid user id"))
		return
	}

	if ident.UserID == id {
		respondError(c, apperr.New(apperr.InvalidInput, "You cannot delete your own account"))
		return
	}

	targetRole, err := h.authz.UserRole(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if targetRole != string(models.RoleLecturer) {
		respondError(c, apperr.New(apperr.Forbidden, "Only lecturers can be deleted by admin"))
		return
	}

	if _, err := h.db.Exec(`DELETE FROM users WHERE id = $1 AND role = 'lecturer'`, id); err != nil {
		respondError(c, apperr.Wrap(err, "Failed to delete user"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
