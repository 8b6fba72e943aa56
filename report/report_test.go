package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		month     string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{name: "january", month: "2026-01", wantStart: "2026-01-01", wantEnd: "2026-02-01"},
		{name: "december rolls year", month: "2026-12", wantStart: "2026-12-01", wantEnd: "2027-01-01"},
		{name: "february", month: "2024-02", wantStart: "2024-02-01", wantEnd: "2024-03-01"},
		{name: "month 13", month: "2026-13", wantErr: true},
		{name: "month 0", month: "2026-00", wantErr: true},
		{name: "garbage", month: "abc", wantErr: true},
		{name: "single digit month", month: "2026-1", wantErr: true},
		{name: "empty", month: "", wantErr: true},
		{name: "full date", month: "2026-01-15", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthRange(tt.month)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name           string
		present, total int
		want           int
	}{
		{name: "zero total is zero, not a division error", present: 0, total: 0, want: 0},
		{name: "seven of ten", present: 7, total: 10, want: 70},
		{name: "rounds down", present: 1, total: 3, want: 33},
		{name: "rounds up", present: 2, total: 3, want: 67},
		{name: "full attendance", present: 20, total: 20, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(tt.present, tt.total)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 78.46, RoundScore(78.456))
	assert.Equal(t, 78.45, RoundScore(78.454))
	assert.Equal(t, 0.0, RoundScore(0))
	assert.Equal(t, 66.67, RoundScore(66.666666))
}

func TestAttendanceCSV(t *testing.T) {
	rows := []AttendanceSummary{
		{StudentID: 1, StudentName: "Alice", PresentDays: 7, TotalDays: 10, Percent: 70},
		{StudentID: 2, StudentName: `Smith, John "JJ"`, PresentDays: 0, TotalDays: 0, Percent: 0},
	}

	csv := AttendanceCSV(rows)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "student_id,student_name,present_days,total_days,percent", lines[0])
	assert.Equal(t, "1,Alice,7,10,70", lines[1])
	// comma and quotes force quoting with doubled inner quotes
	assert.Equal(t, `2,"Smith, John ""JJ""",0,0,0`, lines[2])
}

func TestAttendanceCSVEmpty(t *testing.T) {
	assert.Equal(t, "", AttendanceCSV(nil))
	assert.Equal(t, "", AttendanceCSV([]AttendanceSummary{}))
}

func TestMarksCSV(t *testing.T) {
	rows := []MarksSummary{
		{StudentID: 3, StudentName: "Bob", AverageScore: 72.5, MarksCount: 4},
	}

	csv := MarksCSV(rows)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	assert.Len(t, lines, 2)
	assert.Equal(t, "student_id,student_name,average_score,marks_count", lines[0])
	assert.Equal(t, "3,Bob,72.5,4", lines[1])
}
