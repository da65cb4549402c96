package models

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Enrollment links a student to a course. Progress and status are computed
// server-side; this layer only displays them.
type Enrollment struct {
	ID               string           `json:"_id"`
	StudentID        string           `json:"studentId"`
	CourseID         string           `json:"courseId"`
	BatchID          string           `json:"batchId,omitempty"`
	Status           EnrollmentStatus `json:"status"`
	Progress         float64          `json:"progress"`
	CompletedLessons []string         `json:"completedLessons"`
	EnrollmentDate   time.Time        `json:"enrollmentDate"`
	CompletionDate   *time.Time       `json:"completionDate,omitempty"`
}

// HasCompletedLesson reports whether lessonID is in the completed set.
func (e *Enrollment) HasCompletedLesson(lessonID string) bool {
	for _, id := range e.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}
