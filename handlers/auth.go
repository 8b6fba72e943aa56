package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"acadtrack_backend/apperr"
	"acadtrack_backend/middleware"
	"acadtrack_backend/models"
)

type AuthHandler struct {
	db           *sql.DB
	tokenService *middleware.TokenService
	secureCookie bool
}

func NewAuthHandler(db *sql.DB, ts *middleware.TokenService, secureCookie bool) *AuthHandler {
	return &AuthHandler{db: db, tokenService: ts, secureCookie: secureCookie}
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Email & password required"))
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(c, apperr.New(apperr.InvalidInput, "Email & password required"))
		return
	}

	var (
		id           int
		name         string
		passwordHash string
		role         models.Role
		isActive     bool
	)
	err := h.db.QueryRow(
		`SELECT id, name, password_hash, role, is_active FROM users WHERE email = $1 LIMIT 1`,
		trimmed(req.Email),
	).Scan(&id, &name, &passwordHash, &role, &isActive)
	if err == sql.ErrNoRows {
		respondError(c, apperr.New(apperr.Unauthenticated, "Invalid credentials"))
		return
	}
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to verify credentials"))
		return
	}

	if !isActive {
		respondError(c, apperr.New(apperr.Forbidden, "Account disabled"))
		return
	}

	if !middleware.VerifyPassword(passwordHash, req.Password) {
		respondError(c, apperr.New(apperr.Unauthenticated, "Invalid credentials"))
		return
	}

	token, err := h.tokenService.Generate(id, role)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to generate token"))
		return
	}

	middleware.SetAuthCookie(c, token, h.tokenService.TTL(), h.secureCookie)
	c.JSON(http.StatusOK, models.LoginResponse{ID: id, Name: name, Role: role})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Register is intentionally disabled: student accounts are provisioned by
// lecturers, lecturer accounts by admin.
func (h *AuthHandler) Register(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"message": "Self-register disabled. Ask your lecturer to create your student account.",
	})
}

// Me returns the current identity, re-checked against the live user row.
// Unlike per-request auth, a deleted or disabled account fails here and the
// stale cookie is cleared.
func (h *AuthHandler) Me(c *gin.Context) {
	ident := identity(c)

	var user models.UserInfo
	var isActive bool
	err := h.db.QueryRow(
		`SELECT id, name, email, role, is_active FROM users WHERE id = $1 LIMIT 1`,
		ident.UserID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &isActive)
	if err == sql.ErrNoRows || (err == nil && !isActive) {
		middleware.ClearAuthCookie(c)
		c.JSON(http.StatusUnauthorized, models.MeResponse{User: nil})
		return
	}
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to load user"))
		return
	}

	c.JSON(http.StatusOK, models.MeResponse{User: &user})
}
