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
	"acadtrack_backend/report"
)

// ReportHandler builds the lecturer's monthly attendance and marks reports.
// Scope rules: either both batch_id and subject_id are supplied (and must be
// an assignment of the caller), or neither, in which case the report spans
// every assignment the lecturer holds.
type ReportHandler struct {
	db    *sql.DB
	authz *authz.Authorizer
}

func NewReportHandler(database *sql.DB, az *authz.Authorizer) *ReportHandler {
	return &ReportHandler{db: database, authz: az}
}

type reportScope struct {
	start, end         string
	month              string
	batchID, subjectID int
	filtered           bool
	csv                bool
}

// parseScope validates the shared report query parameters and runs the scope
// check for explicit batch+subject filters.
func (h *ReportHandler) parseScope(c *gin.Context, lecturerID int) (reportScope, bool) {
	var scope reportScope

	scope.month = c.Query("month")
	if scope.month == "" {
		respondError(c, apperr.New(apperr.InvalidInput, "month required (YYYY-MM)"))
		return scope, false
	}
	start, end, err := report.MonthRange(scope.month)
	if err != nil {
		respondError(c, apperr.New(apperr.InvalidInput, "Invalid month. Use YYYY-MM (example: 2026-01)"))
		return scope, false
	}
	scope.start, scope.end = start, end
	scope.csv = strings.EqualFold(c.Query("format"), "csv")

	rawBatch := c.Query("batch_id")
	rawSubject := c.Query("subject_id")
	if (rawBatch == "") != (rawSubject == "") {
		respondError(c, apperr.New(apperr.InvalidInput,
			"For lecturer: provide BOTH batch_id and subject_id, or provide NONE"))
		return scope, false
	}

	if rawBatch != "" {
		batchID, berr := strconv.Atoi(rawBatch)
		subjectID, serr := strconv.Atoi(rawSubject)
		if berr != nil || serr != nil {
			respondError(c, apperr.New(apperr.InvalidInput, "Invalid batch_id or subject_id"))
			return scope, false
		}
		if err := h.authz.LecturerAssigned(lecturerID, batchID, subjectID); err != nil {
			respondError(c, err)
			return scope, false
		}
		scope.batchID, scope.subjectID = batchID, subjectID
		scope.filtered = true
	}

	return scope, true
}

// Attendance aggregates per-student present/total counts over the month
// window. Students without sessions report percent 0, not an error.
func (h *ReportHandler) Attendance(c *gin.Context) {
	ident := identity(c)

	scope, ok := h.parseScope(c, ident.UserID)
	if !ok {
		return
	}

	var rows *sql.Rows
	var err error

	if scope.filtered {
		rows, err = h.db.Query(`
            SELECT u.id, u.name,
                   COALESCE(SUM(CASE WHEN a.status THEN 1 ELSE 0 END), 0) AS present_days,
                   COUNT(a.id) AS total_days
            FROM batch_students bs
            JOIN users u ON u.id = bs.student_id
            LEFT JOIN attendance a
              ON a.student_id = u.id
             AND a.date >= $1 AND a.date < $2
             AND a.batch_id = $3 AND a.subject_id = $4
            WHERE u.role = 'student' AND u.is_active AND bs.batch_id = $3
            GROUP BY u.id, u.name
            ORDER BY u.id ASC
        `, scope.start, scope.end, scope.batchID, scope.subjectID)
	} else {
		rows, err = h.db.Query(`
            SELECT u.id, u.name,
                   COALESCE(SUM(CASE WHEN a.status THEN 1 ELSE 0 END), 0) AS present_days,
                   COUNT(a.id) AS total_days
            FROM users u
            LEFT JOIN attendance a
              ON a.student_id = u.id
             AND a.date >= $1 AND a.date < $2
             AND EXISTS (
                 SELECT 1 FROM lecturer_assignments la
                 WHERE la.lecturer_id = $3 AND la.batch_id = a.batch_id AND la.subject_id = a.subject_id
             )
            WHERE u.role = 'student' AND u.is_active
              AND EXISTS (
                  SELECT 1
                  FROM batch_students bs
                  JOIN lecturer_assignments la ON la.batch_id = bs.batch_id
                  WHERE bs.student_id = u.id AND la.lecturer_id = $3
              )
            GROUP BY u.id, u.name
            ORDER BY u.id ASC
        `, scope.start, scope.end, ident.UserID)
	}
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to build attendance report"))
		return
	}
	defer rows.Close()

	summaries := make([]report.AttendanceSummary, 0)
	for rows.Next() {
		var s report.AttendanceSummary
		if err := rows.Scan(&s.StudentID, &s.StudentName, &s.PresentDays, &s.TotalDays); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan report row"))
			return
		}
		s.Percent = report.Percent(s.PresentDays, s.TotalDays)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		respondError(c, apperr.Wrap(err, "Failed to build attendance report"))
		return
	}

	if scope.csv {
		writeCSV(c, fmt.Sprintf("attendance_%s.csv", scope.month), report.AttendanceCSV(summaries))
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Marks aggregates average score and entry count per student over the month
// window, under the same scope rules as the attendance report.
func (h *ReportHandler) Marks(c *gin.Context) {
	ident := identity(c)

	scope, ok := h.parseScope(c, ident.UserID)
	if !ok {
		return
	}

	query := `
        SELECT u.id, u.name,
               COALESCE(AVG(m.score), 0) AS average_score,
               COUNT(m.id) AS marks_count
        FROM marks m
        JOIN users u ON u.id = m.student_id
        WHERE m.date >= $1 AND m.date < $2
          AND EXISTS (
              SELECT 1 FROM lecturer_assignments la
              WHERE la.lecturer_id = $3 AND la.batch_id = m.batch_id AND la.subject_id = m.subject_id
          )`
	params := []interface{}{scope.start, scope.end, ident.UserID}

	if scope.filtered {
		query += ` AND m.batch_id = $4 AND m.subject_id = $5`
		params = append(params, scope.batchID, scope.subjectID)
	}
	query += `
        GROUP BY u.id, u.name
        ORDER BY u.id ASC`

	rows, err := h.db.Query(query, params...)
	if err != nil {
		respondError(c, apperr.Wrap(err, "Failed to build marks report"))
		return
	}
	defer rows.Close()

	summaries := make([]report.MarksSummary, 0)
	for rows.Next() {
		var s report.MarksSummary
		if err := rows.Scan(&s.StudentID, &s.StudentName, &s.AverageScore, &s.MarksCount); err != nil {
			respondError(c, apperr.Wrap(err, "Failed to scan report row"))
			return
		}
		s.AverageScore = report.RoundScore(s.AverageScore)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		respondError(c, apperr.Wrap(err, "Failed to build marks report"))
		return
	}

	if scope.csv {
		writeCSV(c, fmt.Sprintf("marks_%s.csv", scope.month), report.MarksCSV(summaries))
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func writeCSV(c *gin.Context, filename, body string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
