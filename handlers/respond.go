package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"acadtrack_backend/apperr"
	"acadtrack_backend/middleware"
)

// respondError is the single boundary where error kinds become HTTP
// responses. Unexpected failures are logged with the request id; the client
// only sees a generic message.
func respondError(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		if e.Kind == apperr.Unexpected {
			log.Printf("[%s] %s %s: %v", middleware.RequestIDFrom(c), c.Request.Method, c.Request.URL.Path, e)
			c.JSON(http.StatusInternalServerError, gin.H{"message": e.Message})
			return
		}
		c.JSON(apperr.StatusCode(e.Kind), gin.H{"message": e.Message})
		return
	}

	log.Printf("[%s] %s %s: %v", middleware.RequestIDFrom(c), c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Unexpected error"})
}

// identity returns the caller set by the auth middleware. Routes behind
// Authenticate always have one; the zero value only shows up in tests that
// skip the middleware.
func identity(c *gin.Context) middleware.Identity {
	ident, _ := middleware.IdentityFrom(c)
	return ident
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func trimmed(s string) string { return strings.TrimSpace(s) }

func isValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// cleanName trims the name and reports whether it meets the minimum length.
func cleanName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	return trimmed, len(trimmed) >= 2
}

// validDate reports whether s is a calendar date in YYYY-MM-DD form.
func validDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
