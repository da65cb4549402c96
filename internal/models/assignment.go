package models

import "time"

type Assignment struct {
	ID          string    `json:"_id"`
	CourseID    string    `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AssignmentSubmission struct {
	ID           string     `json:"_id"`
	AssignmentID string     `json:"assignmentId"`
	StudentID    string     `json:"studentId"`
	Answer       string     `json:"answer"`
	FileLink     string     `json:"fileLink,omitempty"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	Grade        *int       `json:"grade,omitempty"`
	Feedback     string     `json:"feedback,omitempty"`
	GradedAt     *time.Time `json:"gradedAt,omitempty"`
}

// IsGraded reports whether an admin has graded this submission yet.
func (s *AssignmentSubmission) IsGraded() bool {
	return s.Grade != nil
}

// AssignmentWithSubmission pairs an assignment with the current student's
// submission, if one exists.
type AssignmentWithSubmission struct {
	Assignment Assignment
	Submission Optional[AssignmentSubmission]
}
