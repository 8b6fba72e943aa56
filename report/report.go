// Package report holds the pure pieces of the reporting endpoints: month
// window parsing, per-student aggregation math and CSV rendering. Keeping
// them store-free makes the percent and quoting rules directly testable.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

var monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// MonthRange parses a YYYY-MM string into the half-open date range
// [first-of-month, first-of-next-month), both formatted as YYYY-MM-DD.
func MonthRange(month string) (start, end string, err error) {
	match := monthPattern.FindStringSubmatch(month)
	if match == nil {
		return "", "", fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	year, _ := strconv.Atoi(match[1])
	mon, _ := strconv.Atoi(match[2])
	if mon < 1 || mon > 12 {
		return "", "", fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}

	first := time.Date(year, time.Month(mon), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	return first.Format("2006-01-02"), next.Format("2006-01-02"), nil
}

// Percent is round(present/total*100), defined as 0 when total is 0.
func Percent(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}

// RoundScore rounds an average score to two decimals.
func RoundScore(avg float64) float64 {
	return math.Round(avg*100) / 100
}

// AttendanceSummary is one report row per student.
type AttendanceSummary struct {
	StudentID   int    `json:"student_id"`
	StudentName string `json:"student_name"`
	PresentDays int    `json:"present_days"`
	TotalDays   int    `json:"total_days"`
	Percent     int    `json:"percent"`
}

// MarksSummary aggregates a student's marks over the report window.
type MarksSummary struct {
	StudentID    int     `json:"student_id"`
	StudentName  string  `json:"student_name"`
	AverageScore float64 `json:"average_score"`
	MarksCount   int     `json:"marks_count"`
}

// AttendanceCSV renders rows as delimited text: a header line of the row's
// field names, then one record per student. Fields containing a comma, quote
// or newline are quoted with doubled inner quotes.
func AttendanceCSV(rows []AttendanceSummary) string {
	if len(rows) == 0 {
		return ""
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.StudentID),
			r.StudentName,
			strconv.Itoa(r.PresentDays),
			strconv.Itoa(r.TotalDays),
			strconv.Itoa(r.Percent),
		})
	}
	return renderCSV([]string{"student_id", "student_name", "present_days", "total_days", "percent"}, records)
}

// MarksCSV renders marks summaries the same way.
func MarksCSV(rows []MarksSummary) string {
	if len(rows) == 0 {
		return ""
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.StudentID),
			r.StudentName,
			strconv.FormatFloat(r.AverageScore, 'f', -1, 64),
			strconv.Itoa(r.MarksCount),
		})
	}
	return renderCSV([]string{"student_id", "student_name", "average_score", "marks_count"}, records)
}

func renderCSV(header []string, records [][]string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	_ = w.WriteAll(records)
	w.Flush()
	return buf.String()
}
