package models

import "time"

type CreateLecturerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BatchID   int    `json:"batch_id"`
	SubjectID int    `json:"subject_id"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"is_active"`
}

// LecturerRow is the admin lecturer listing, with the lecturer's assignments
// aggregated into display strings.
type LecturerRow struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	BatchNames   string    `json:"batch_names"`
	SubjectNames string    `json:"subject_names"`
	Assignments  string    `json:"assignments"`
}

type StudentRow struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// EnrollStudentRequest either enrolls an existing student account by email or
// creates a new one (name + password present) and enrolls it.
type EnrollStudentRequest struct {
	BatchID  int    `json:"batch_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
