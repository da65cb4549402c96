package events

import (
	"time"

	"github.com/coursemaster/client-service/internal/models"
)

// EventType represents different types of UI events
type EventType string

const (
	// Catalog events
	EventCatalogRefreshed EventType = "catalog.refreshed"

	// Quiz events
	EventQuizStarted   EventType = "quiz.started"
	EventQuizSubmitted EventType = "quiz.submitted"

	// Learning events
	EventLessonCompleted EventType = "lesson.completed"

	// Payment events
	EventPaymentValidated EventType = "payment.validated"
)

// UIEvent is the base event structure carried on the in-process bus. Screens
// subscribe to react to state changes made elsewhere instead of re-fetching.
type UIEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type CatalogRefreshedEvent struct {
	Sequence uint64 `json:"sequence"`
	Page     int    `json:"page"`
	Total    int    `json:"total"`
	Items    int    `json:"items"`
}

type QuizStartedEvent struct {
	QuizID    string `json:"quiz_id"`
	CourseID  string `json:"course_id"`
	Questions int    `json:"questions"`
	IsRetake  bool   `json:"is_retake"`
}

type QuizSubmittedEvent struct {
	QuizID    string `json:"quiz_id"`
	AttemptID string `json:"attempt_id"`
	Score     int    `json:"score"`
	Passed    bool   `json:"passed"`
}

type LessonCompletedEvent struct {
	EnrollmentID string  `json:"enrollment_id"`
	LessonID     string  `json:"lesson_id"`
	Progress     float64 `json:"progress"`
}

type PaymentValidatedEvent struct {
	TransactionID string             `json:"transaction_id"`
	OrderID       string             `json:"order_id"`
	Status        models.OrderStatus `json:"status"`
	Success       bool               `json:"success"`
}
