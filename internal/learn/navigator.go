package learn

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/coursemaster/client-service/internal/events"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
)

// CompletionAPI is the slice of the API client the navigator needs.
type CompletionAPI interface {
	MarkLessonComplete(ctx context.Context, enrollmentID, lessonID string) (*models.Enrollment, error)
}

// Navigator traverses a course's lessons by index within the learn view.
// Next/previous are bounded by the first and last lesson; marking a lesson
// complete is idempotent and updates the local enrollment copy with set
// semantics. Progress is recomputed server-side; the navigator only derives
// the displayed percentage.
type Navigator struct {
	mu        sync.Mutex
	api       CompletionAPI
	publisher events.EventPublisher
	logger    utils.Logger

	course     models.Course
	enrollment models.Enrollment
	current    int
}

func NewNavigator(course models.Course, enrollment models.Enrollment, api CompletionAPI, publisher events.EventPublisher, logger utils.Logger) *Navigator {
	// Lessons keep a stable relative order defined by their order index.
	sort.SliceStable(course.Lessons, func(i, j int) bool {
		return course.Lessons[i].Order < course.Lessons[j].Order
	})
	return &Navigator{
		api:        api,
		publisher:  publisher,
		logger:     logger,
		course:     course,
		enrollment: enrollment,
	}
}

// ===== NAVIGATION =====

// Current returns the lesson under the cursor.
func (n *Navigator) Current() (models.Lesson, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.course.Lessons) == 0 {
		return models.Lesson{}, false
	}
	return n.course.Lessons[n.current], true
}

// Next advances to the following lesson; a no-op at the last lesson.
func (n *Navigator) Next() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current < len(n.course.Lessons)-1 {
		n.current++
	}
}

// Previous steps back to the prior lesson; a no-op at the first lesson.
func (n *Navigator) Previous() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current > 0 {
		n.current--
	}
}

// HasNext reports whether the "next" control is enabled.
func (n *Navigator) HasNext() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current < len(n.course.Lessons)-1
}

// HasPrevious reports whether the "previous" control is enabled.
func (n *Navigator) HasPrevious() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current > 0
}

// GoTo jumps directly to a lesson by id from the sidebar listing.
func (n *Navigator) GoTo(lessonID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, l := range n.course.Lessons {
		if l.ID == lessonID {
			n.current = i
			return true
		}
	}
	return false
}

// ===== COMPLETION =====

// IsCompleted reports whether a lesson is in the enrollment's completed set.
func (n *Navigator) IsCompleted(lessonID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enrollment.HasCompletedLesson(lessonID)
}

// MarkCurrentComplete records the current lesson as completed. Already
// completed lessons are a no-op (the control is disabled in the UI); the
// completed set never gains a duplicate id.
func (n *Navigator) MarkCurrentComplete(ctx context.Context) error {
	n.mu.Lock()
	if len(n.course.Lessons) == 0 {
		n.mu.Unlock()
		return nil
	}
	lesson := n.course.Lessons[n.current]
	if n.enrollment.HasCompletedLesson(lesson.ID) {
		n.mu.Unlock()
		return nil
	}
	enrollmentID := n.enrollment.ID
	n.mu.Unlock()

	updated, err := n.api.MarkLessonComplete(ctx, enrollmentID, lesson.ID)
	if err != nil {
		n.logger.LogError(err, "failed to mark lesson complete",
			"enrollment_id", enrollmentID,
			"lesson_id", lesson.ID)
		return err
	}

	n.mu.Lock()
	if updated != nil {
		n.enrollment = *updated
	}
	// Guard against a server response missing the new id.
	if !n.enrollment.HasCompletedLesson(lesson.ID) {
		n.enrollment.CompletedLessons = append(n.enrollment.CompletedLessons, lesson.ID)
	}
	progress := n.progressLocked()
	n.mu.Unlock()

	n.logger.Info("lesson completed",
		"enrollment_id", enrollmentID,
		"lesson_id", lesson.ID,
		"progress", progress)

	if n.publisher != nil {
		event := events.NewUIEvent(events.EventLessonCompleted, events.LessonCompletedEvent{
			EnrollmentID: enrollmentID,
			LessonID:     lesson.ID,
			Progress:     progress,
		})
		if err := n.publisher.PublishUIEvent(ctx, event); err != nil {
			n.logger.Warn("failed to publish lesson completed event", "error", err)
		}
	}
	return nil
}

// ===== PROGRESS =====

// Progress returns completedCount / totalLessons * 100.
func (n *Navigator) Progress() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.progressLocked()
}

// DisplayProgress returns the progress percentage rounded for display.
func (n *Navigator) DisplayProgress() int {
	return int(math.Round(n.Progress()))
}

func (n *Navigator) progressLocked() float64 {
	total := len(n.course.Lessons)
	if total == 0 {
		return 0
	}
	completed := 0
	for _, l := range n.course.Lessons {
		if n.enrollment.HasCompletedLesson(l.ID) {
			completed++
		}
	}
	return float64(completed) / float64(total) * 100
}

// Enrollment returns the local enrollment copy.
func (n *Navigator) Enrollment() models.Enrollment {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enrollment
}

// Lessons returns the ordered lesson sequence.
func (n *Navigator) Lessons() []models.Lesson {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.Lesson, len(n.course.Lessons))
	copy(out, n.course.Lessons)
	return out
}
