package models

// CreateMarkRequest appends one exam entry. There is no upsert key: saving
// the same combination twice produces two rows.
type CreateMarkRequest struct {
	BatchID   int      `json:"batch_id"`
	StudentID int      `json:"student_id"`
	SubjectID int      `json:"subject_id"`
	ExamType  string   `json:"exam_type"`
	Score     *float64 `json:"score"`
	Date      string   `json:"date"`
}

type MarkRow struct {
	ID          int     `json:"id"`
	BatchID     int     `json:"batch_id"`
	BatchName   string  `json:"batch_name"`
	StudentID   int     `json:"student_id"`
	StudentName string  `json:"student_name,omitempty"`
	SubjectID   int     `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	ExamType    string  `json:"exam_type"`
	Score       float64 `json:"score"`
	Date        string  `json:"date"`
}
