package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"acadtrack_backend/apperr"
	"acadtrack_backend/authz"
	"acadtrack_backend/models"
)

// MetaHandler serves the role-filtered id+name listings the pages use to
// populate selectors. Every listing is restricted to what the caller may see:
// admin gets catalog data, a lecturer gets assignment-linked rows, a student
// gets enrolled/own rows.
type MetaHandler struct {
	db    *sql.DB
	authz *authz.Authorizer
}

func NewMetaHandler(database *sql.DB, az *authz.Authorizer) *MetaHandler {
	return &MetaHandler{db: database, authz: az}
}

func (h *MetaHandler) Batches(c *gin.Context) {
	ident := identity(c)

	switch ident.Role {
	case models.RoleAdmin:
		h.listRefs(c, `SELECT id, name FROM batches WHERE is_active ORDER BY id ASC`)
	case models.RoleLecturer:
		h.listRefs(c, `
            SELECT DISTINCT b.id, b.name
            FROM lecturer_assignments la
            JOIN batches b ON b.id = la.batch_id
            WHERE la.lecturer_id = $1 AND b.is_active
            ORDER BY b.id ASC
        `, ident.UserID)
	case models.RoleStudent:
		h.listRefs(c, `
            SELECT DISTINCT b.id, b.name
            FROM batch_students bs
            JOIN batches b ON b.id = bs.batch_id
            WHERE bs.student_id = $1 AND b.is_active
            ORDER BY b.id ASC
        `, ident.UserID)
	default:
		c.JSON(http.StatusOK, []models.NamedRef{})
	}
}

func (h *MetaHandler) Subjects(c *gin.Context) {
	ident := identity(c)

	switch ident.Role {
	case models.RoleLecturer:
		h.listRefs(c, `
            SELECT DISTINCT s.id, s.name
            FROM lecturer_assignments la
            JOIN subjects s ON s.id = la.subject_id
            WHERE la.lecturer_id = $1 AND s.is_active
            ORDER BY s.id ASC
        `, ident.UserID)
	case models.RoleAdmin, models.RoleStudent:
		h.listRefs(c, `SELECT id, name FROM subjects WHERE is_active ORDER BY id ASC`)
	default:
		c.JSON(http.StatusOK, []models.NamedRef{})
	}
}

// Students lists a batch roster for lecturers (scope-checked) or the caller
// itself for students. Admin never reads student data.
func (h *MetaHandler) Students(c *gin.Context) {
	ident := identity(c)

	switch ident.Role {
	case models.RoleStudent:
		h.listStudentRefs(c, `
            SELECT id, name, email FROM users
            WHERE id = $1 AND role = 'student' AND is_active
        `, ident.UserID)
	case models.RoleAdmin:
		respondError(c, apperr.New(apperr.Forbidden, "Forbidden"))
	case models.RoleLecturer:
		batchID, err := strconv.Atoi(c.Query("batch_id"))
		if err != nil {
			respondError(c, apperr.New(apperr.InvalidInput, "batch_id is required"))
			return
		}
		if err := h.authz.LecturerHasBatch(ident.UserID, batchID); err != nil {
			respondError(c, err)
			return
		}
		h.listStudentRefs(c, `
            SELECT u.id, u.name, u.email
            FROM batch_students bs
            JOIN users u ON u.id = bs.student_id
            WHERE bs.batch_id = $1 AND u.role = 'student' AND u.is_active
            ORDER BY u.id ASC
        `, batchID)
	default:
		respondError(c, apperr.New(apperr.Forbidden, "Forbidden"))
	}
}

func (h *MetaHandler) listRefs(c *gin.Context, query string, args ...interface{}) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch metadata"))
		return
	}
	defer rows.Close()

	refs := make([]models.NamedRef, 0)
	for rows.Next() {
		var ref models.NamedRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan metadata"))
			return
		}
		refs = append(refs, ref)
	}

	c.JSON(http.StatusOK, refs)
}

func (h *MetaHandler) listStudentRefs(c *gin.Context, query string, args ...interface{}) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to fetch students"))
		return
	}
	defer rows.Close()

	type studentRef struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	refs := make([]studentRef, 0)
	for rows.Next() {
		var ref studentRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Email); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan student"))
			return
		}
		refs = append(refs, ref)
	}

	c.JSON(http.StatusOK, refs)
}
