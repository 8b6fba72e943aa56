package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"acadtrack_backend/middleware"
	"acadtrack_backend/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asIdentity injects the caller identity the way the auth middleware would,
// so validation paths can run without a session cookie.
func asIdentity(userID int, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", middleware.Identity{UserID: userID, Role: role})
		c.Next()
	}
}

func perform(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAlwaysForbidden(t *testing.T) {
	h := NewAuthHandler(nil, middleware.NewTokenService([]byte("secret"), time.Hour), false)
	r := gin.New()
	r.POST("/auth/register", h.Register)

	rec := perform(r, http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"secret123"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Self-register disabled")
}

func TestLoginMissingFields(t *testing.T) {
	h := NewAuthHandler(nil, middleware.NewTokenService([]byte("secret"), time.Hour), false)
	r := gin.New()
	r.POST("/auth/login", h.Login)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "no password", body: `{"email":"a@b.com"}`},
		{name: "no email", body: `{"password":"secret123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := perform(r, http.MethodPost, "/auth/login", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Email & password required")
		})
	}
}

func TestReportScopeValidation(t *testing.T) {
	h := NewReportHandler(nil, nil)
	r := gin.New()
	r.GET("/reports/attendance", asIdentity(1, models.RoleLecturer), h.Attendance)
	r.GET("/reports/marks", asIdentity(1, models.RoleLecturer), h.Marks)

	tests := []struct {
		name    string
		target  string
		message string
	}{
		{name: "missing month", target: "/reports/attendance", message: "month required"},
		{name: "invalid month", target: "/reports/attendance?month=2026-13", message: "Invalid month"},
		{name: "month not zero padded", target: "/reports/attendance?month=2026-1", message: "Invalid month"},
		{name: "batch without subject", target: "/reports/attendance?month=2026-01&batch_id=1", message: "BOTH batch_id and subject_id"},
		{name: "subject without batch", target: "/reports/attendance?month=2026-01&subject_id=2", message: "BOTH batch_id and subject_id"},
		{name: "marks missing month", target: "/reports/marks", message: "month required"},
		{name: "marks lone filter", target: "/reports/marks?month=2026-01&subject_id=2", message: "BOTH batch_id and subject_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := perform(r, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestAttendanceGetMissingFilters(t *testing.T) {
	h := NewAttendanceHandler(nil, nil)
	r := gin.New()
	r.GET("/attendance", asIdentity(1, models.RoleLecturer), h.Get)

	targets := []string{
		"/attendance",
		"/attendance?date=2026-01-05",
		"/attendance?date=2026-01-05&batch_id=1",
		"/attendance?date=not-a-date&batch_id=1&subject_id=2",
		"/attendance?date=2026-01-05&batch_id=x&subject_id=2",
	}
	for _, target := range targets {
		rec := perform(r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Missing filters")
	}
}

func TestAttendanceSaveInvalidPayload(t *testing.T) {
	h := NewAttendanceHandler(nil, nil)
	r := gin.New()
	r.POST("/attendance", asIdentity(1, models.RoleLecturer), h.Save)

	bodies := []string{
		`not json`,
		`{}`,
		`{"date":"2026-01-05","batch_id":1}`,
		`{"date":"2026-01-05","batch_id":1,"subject_id":2}`,
		`{"date":"05-01-2026","batch_id":1,"subject_id":2,"records":[]}`,
	}
	for _, body := range bodies {
		rec := perform(r, http.MethodPost, "/attendance", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "Invalid payload")
	}
}

func TestAttendanceDetailsBadQuery(t *testing.T) {
	h := NewAttendanceHandler(nil, nil)
	r := gin.New()
	r.GET("/student/attendance-details", asIdentity(5, models.RoleStudent), h.Details)

	tests := []struct {
		name    string
		target  string
		message string
	}{
		{name: "zero limit", target: "/student/attendance-details?limit=0", message: "Invalid limit"},
		{name: "negative limit", target: "/student/attendance-details?limit=-3", message: "Invalid limit"},
		{name: "non numeric limit", target: "/student/attendance-details?limit=abc", message: "Invalid limit"},
		{name: "bad month", target: "/student/attendance-details?month=January", message: "Invalid month"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := perform(r, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestMarkCreateMissingFields(t *testing.T) {
	h := NewMarkHandler(nil, nil)
	r := gin.New()
	r.POST("/marks", asIdentity(1, models.RoleLecturer), h.Create)

	bodies := []string{
		`{}`,
		`{"batch_id":1,"student_id":2,"subject_id":3,"exam_type":"midterm","date":"2026-01-05"}`,
		`{"batch_id":1,"student_id":2,"subject_id":3,"score":80,"date":"2026-01-05"}`,
		`{"batch_id":1,"student_id":2,"subject_id":3,"exam_type":"midterm","score":80,"date":"bad"}`,
		`{"batch_id":1,"student_id":2,"subject_id":3,"exam_type":"  ","score":80,"date":"2026-01-05"}`,
	}
	for _, body := range bodies {
		rec := perform(r, http.MethodPost, "/marks", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "Missing required fields")
	}
}

func TestMarksListForbiddenForAdmin(t *testing.T) {
	h := NewMarkHandler(nil, nil)
	r := gin.New()
	r.GET("/marks", asIdentity(1, models.RoleAdmin), h.List)

	rec := perform(r, http.MethodGet, "/marks", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMarksListScopedInvalidFilter(t *testing.T) {
	h := NewMarkHandler(nil, nil)
	r := gin.New()
	r.GET("/marks", asIdentity(1, models.RoleLecturer), h.List)

	rec := perform(r, http.MethodGet, "/marks?batch_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid batch_id")
}

func TestStudentListRequiresBatchID(t *testing.T) {
	h := NewStudentHandler(nil, nil)
	r := gin.New()
	r.GET("/lecturer/students", asIdentity(1, models.RoleLecturer), h.List)

	rec := perform(r, http.MethodGet, "/lecturer/students", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "batch_id required")
}

func TestEnrollRejectsBadInput(t *testing.T) {
	h := NewStudentHandler(nil, nil)
	r := gin.New()
	r.POST("/lecturer/students", asIdentity(1, models.RoleLecturer), h.Enroll)

	bodies := []string{
		`{}`,
		`{"email":"a@b.com"}`,
		`{"batch_id":1,"email":"not-an-email"}`,
		`{"batch_id":1,"email":"missing@domain"}`,
	}
	for _, body := range bodies {
		rec := perform(r, http.MethodPost, "/lecturer/students", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "batch_id and valid email required")
	}
}

func TestBatchCreateRejectsShortName(t *testing.T) {
	h := NewBatchHandler(nil)
	r := gin.New()
	r.POST("/admin/batches", h.Create)

	bodies := []string{`{}`, `{"name":""}`, `{"name":" x "}`}
	for _, body := range bodies {
		rec := perform(r, http.MethodPost, "/admin/batches", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "Name required")
	}
}

func TestBatchUpdateValidation(t *testing.T) {
	h := NewBatchHandler(nil)
	r := gin.New()
	r.PATCH("/admin/batches/:id", h.Update)

	tests := []struct {
		name    string
		target  string
		body    string
		message string
	}{
		{name: "bad id", target: "/admin/batches/abc", body: `{"name":"Fall"}`, message: "Invalid batch id"},
		{name: "empty patch", target: "/admin/batches/1", body: `{}`, message: "Nothing to update"},
		{name: "blank name", target: "/admin/batches/1", body: `{"name":" "}`, message: "Name required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := perform(r, http.MethodPatch, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestHelperValidation(t *testing.T) {
	assert.True(t, isValidEmail("a@b.co"))
	assert.True(t, isValidEmail("  padded@mail.org  "))
	assert.False(t, isValidEmail("no-at-sign"))
	assert.False(t, isValidEmail("two@@signs.com"))
	assert.False(t, isValidEmail("a@b"))

	name, ok := cleanName("  Jo  ")
	assert.True(t, ok)
	assert.Equal(t, "Jo", name)
	_, ok = cleanName(" x ")
	assert.False(t, ok)

	assert.True(t, validDate("2026-02-28"))
	assert.False(t, validDate("2026-02-30"))
	assert.False(t, validDate("2026-2-28"))
	assert.False(t, validDate("28-02-2026"))
}
