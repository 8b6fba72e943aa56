package models

import "time"

type CreateAssignmentRequest struct {
	LecturerID int `json:"lecturer_id"`
	BatchID    int `json:"batch_id"`
	SubjectID  int `json:"subject_id"`
}

type AssignmentRow struct {
	ID            int       `json:"id"`
	LecturerID    int       `json:"lecturer_id"`
	LecturerName  string    `json:"lecturer_name"`
	LecturerEmail string    `json:"lecturer_email"`
	BatchID       int       `json:"batch_id"`
	BatchName     string    `json:"batch_name"`
	SubjectID     int       `json:"subject_id"`
	SubjectName   string    `json:"subject_name"`
	CreatedAt     time.Time `json:"created_at"`
}
