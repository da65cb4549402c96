package quiz

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
)

// ListAPI is the slice of the API client the quiz list needs.
type ListAPI interface {
	MyEnrollments(ctx context.Context) ([]models.Enrollment, error)
	QuizzesByCourse(ctx context.Context, courseID string) ([]models.Quiz, error)
	MyAttempt(ctx context.Context, quizID string) (models.Optional[models.QuizAttempt], error)
}

// List is the per-course quiz overview: each quiz paired with the student's
// latest attempt. After a session completes, the affected entry is patched in
// place so the "Passed/Failed" badge updates without a re-fetch.
type List struct {
	mu     sync.Mutex
	api    ListAPI
	logger utils.Logger

	courseID string
	entries  []models.QuizWithAttempt
}

func NewList(api ListAPI, logger utils.Logger, courseID string) *List {
	return &List{
		api:      api,
		logger:   logger,
		courseID: courseID,
	}
}

// Load fetches the course's quizzes and each quiz's attempt status. The
// student must be enrolled. A quiz without an attempt is a normal state, not
// an error.
func (l *List) Load(ctx context.Context) error {
	enrollments, err := l.api.MyEnrollments(ctx)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	enrolled := false
	for _, e := range enrollments {
		if e.CourseID == l.courseID {
			enrolled = true
			break
		}
	}
	if !enrolled {
		return apperrors.ErrNotEnrolled
	}

	quizzes, err := l.api.QuizzesByCourse(ctx, l.courseID)
	if err != nil {
		return err
	}

	entries := make([]models.QuizWithAttempt, 0, len(quizzes))
	for _, q := range quizzes {
		attempt, err := l.api.MyAttempt(ctx, q.ID)
		if err != nil {
			// The list still renders; the entry just shows no attempt.
			l.logger.Warn("failed to load attempt status", "quiz_id", q.ID, "error", err)
			attempt = models.None[models.QuizAttempt]()
		}
		entries = append(entries, models.QuizWithAttempt{Quiz: q, Attempt: attempt})
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return nil
}

// Entries returns the current quiz overview.
func (l *List) Entries() []models.QuizWithAttempt {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.QuizWithAttempt, len(l.entries))
	copy(out, l.entries)
	return out
}

// ApplyAttempt patches the entry for a quiz with a fresh attempt, typically
// right after a session submits successfully.
func (l *List) ApplyAttempt(quizID string, attempt models.QuizAttempt) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].Quiz.ID == quizID {
			l.entries[i].Attempt = models.Some(attempt)
			return
		}
	}
}

// Status summarizes one entry for display: attempted yes/no and pass/fail
// against the quiz's own passing score.
func (l *List) Status(quizID string) (attempted, passed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Quiz.ID != quizID {
			continue
		}
		attempt, ok := e.Attempt.Get()
		if !ok {
			return false, false
		}
		return true, models.IsPassing(attempt.Score, e.Quiz.PassingScore)
	}
	return false, false
}
