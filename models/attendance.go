package models

// AttendanceEntry is one student's status inside a bulk save.
type AttendanceEntry struct {
	StudentID int  `json:"student_id"`
	Status    bool `json:"status"`
}

// SaveAttendanceRequest upserts a whole session sheet at once. Entries for
// students not enrolled in the batch are skipped, not rejected.
type SaveAttendanceRequest struct {
	Date      string            `json:"date"`
	BatchID   int               `json:"batch_id"`
	SubjectID int               `json:"subject_id"`
	Records   []AttendanceEntry `json:"records"`
}

type AttendanceStatusRow struct {
	StudentID int  `json:"student_id"`
	Status    bool `json:"status"`
}

// StudentAttendanceSummary is the student's own present/total aggregate.
type StudentAttendanceSummary struct {
	Percent int `json:"percent"`
	Total   int `json:"total"`
	Present int `json:"present"`
}

// AttendanceDetailRow is one row of a student's paged attendance history.
type AttendanceDetailRow struct {
	ID           int    `json:"id"`
	Date         string `json:"date"`
	BatchID      int    `json:"batch_id"`
	BatchName    string `json:"batch_name"`
	SubjectID    int    `json:"subject_id"`
	SubjectName  string `json:"subject_name"`
	LecturerID   *int   `json:"lecturer_id"`
	LecturerName string `json:"lecturer_name"`
	Status       bool   `json:"status"`
}
