package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"acadtrack_backend/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService([]byte("secret"), time.Hour)

	token, err := ts.Generate(42, models.RoleLecturer)
	assert.NoError(t, err)

	claims, err := ts.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, models.RoleLecturer, claims.Role)
}

func TestTokenExpired(t *testing.T) {
	ts := NewTokenService([]byte("secret"), -time.Minute)

	token, err := ts.Generate(1, models.RoleStudent)
	assert.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService([]byte("secret"), time.Hour)
	verifier := NewTokenService([]byte("other-secret"), time.Hour)

	token, err := issuer.Generate(1, models.RoleAdmin)
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func newAuthTestRouter(ts *TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/whoami", Authenticate(ts), func(c *gin.Context) {
		ident, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": ident.UserID, "role": ident.Role})
	})
	r.GET("/admin-only", Authenticate(ts), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthenticateMissingCookie(t *testing.T) {
	r := newAuthTestRouter(NewTokenService([]byte("secret"), time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r := newAuthTestRouter(NewTokenService([]byte("secret"), time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateValidCookie(t *testing.T) {
	ts := NewTokenService([]byte("secret"), time.Hour)
	r := newAuthTestRouter(ts)

	token, err := ts.Generate(7, models.RoleStudent)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":7`)
	assert.Contains(t, rec.Body.String(), `"role":"student"`)
}

func TestRequireRoleForbidden(t *testing.T) {
	ts := NewTokenService([]byte("secret"), time.Hour)
	r := newAuthTestRouter(ts)

	token, err := ts.Generate(7, models.RoleLecturer)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowed(t *testing.T) {
	ts := NewTokenService([]byte("secret"), time.Hour)
	r := newAuthTestRouter(ts)

	token, err := ts.Generate(1, models.RoleAdmin)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2secret")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2secret", hash)

	assert.True(t, VerifyPassword(hash, "hunter2secret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
