package quiz

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/events"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
)

// State is the quiz session lifecycle state.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
)

// Submitter is the slice of the API client a session needs.
type Submitter interface {
	SubmitQuiz(ctx context.Context, quizID string, answers []string) (*models.QuizAttempt, error)
}

// Session walks a student through one quiz: question-at-a-time navigation,
// single-selection answers with last-write-wins semantics, an all-answered
// submit gate, and a scored result.
//
// Lifecycle: NotStarted -> InProgress -> Submitting -> Completed. A remote
// submit failure returns the session to InProgress with every answer intact.
// Retake moves Completed back to NotStarted with a fresh answer map; the
// prior attempt record is untouched server-side.
type Session struct {
	mu        sync.Mutex
	submitter Submitter
	publisher events.EventPublisher
	logger    utils.Logger

	quiz    models.Quiz
	state   State
	current int
	answers map[string]string
	result  *models.QuizAttempt
	lastErr string
	retake  bool
}

func NewSession(quiz models.Quiz, submitter Submitter, publisher events.EventPublisher, logger utils.Logger) *Session {
	return &Session{
		submitter: submitter,
		publisher: publisher,
		logger:    logger,
		quiz:      quiz,
		state:     StateNotStarted,
	}
}

// ===== LIFECYCLE =====

// Start begins the session: empty answer map, cursor on the first question.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return apperrors.ErrQuizAlreadyStarted
	}

	s.answers = make(map[string]string)
	s.current = 0
	s.result = nil
	s.lastErr = ""
	s.state = StateInProgress

	s.logger.Info("quiz session started",
		"quiz_id", s.quiz.ID,
		"questions", len(s.quiz.Questions),
		"retake", s.retake)

	if s.publisher != nil {
		event := events.NewUIEvent(events.EventQuizStarted, events.QuizStartedEvent{
			QuizID:    s.quiz.ID,
			CourseID:  s.quiz.CourseID,
			Questions: len(s.quiz.Questions),
			IsRetake:  s.retake,
		})
		if err := s.publisher.PublishUIEvent(ctx, event); err != nil {
			s.logger.Warn("failed to publish quiz started event", "error", err)
		}
	}
	return nil
}

// Retake discards the shown result and returns to the NotStarted
// preconditions. The previous attempt record remains server-side.
func (s *Session) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCompleted {
		return fmt.Errorf("retake is only available from a completed session")
	}
	s.state = StateNotStarted
	s.answers = nil
	s.result = nil
	s.current = 0
	s.retake = true
	return nil
}

// ===== ANSWERING & NAVIGATION =====

// SelectOption records the answer for a question, overwriting any prior
// selection (single-selection, last-write-wins). The option must belong to
// the question.
func (s *Session) SelectOption(questionID, optionText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return apperrors.ErrQuizNotInProgress
	}

	question, ok := s.findQuestion(questionID)
	if !ok {
		return apperrors.NewValidationError("questionId", "unknown question", questionID)
	}
	if !hasOption(question, optionText) {
		return apperrors.NewValidationError("answer", "not an option for this question", optionText)
	}

	s.answers[questionID] = optionText
	return nil
}

// Answer returns the recorded selection for a question, so revisiting a
// question pre-fills its prior choice.
func (s *Session) Answer(questionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	answer, ok := s.answers[questionID]
	return answer, ok
}

// CurrentQuestion returns the question under the cursor.
func (s *Session) CurrentQuestion() (models.QuizQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateNotStarted || len(s.quiz.Questions) == 0 {
		return models.QuizQuestion{}, false
	}
	return s.quiz.Questions[s.current], true
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Next moves the cursor forward. Moving away never clears recorded answers.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return apperrors.ErrQuizNotInProgress
	}
	if s.current < len(s.quiz.Questions)-1 {
		s.current++
	}
	return nil
}

// Previous moves the cursor back.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return apperrors.ErrQuizNotInProgress
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

func (s *Session) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current < len(s.quiz.Questions)-1
}

func (s *Session) HasPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current > 0
}

// AnsweredCount returns how many distinct questions have a recorded answer.
func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// CanSubmit reports whether the submit control is enabled: the session is in
// progress and every question has an answer. A quiz with zero questions is
// never submittable.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateInProgress &&
		len(s.quiz.Questions) > 0 &&
		len(s.answers) == len(s.quiz.Questions)
}

// ===== SUBMISSION =====

// Submit sends the full answer set and moves to Completed on success. The
// payload is the ordered answer array, one slot per question in
// quiz-definition order. On a remote failure the session returns to
// InProgress with all answers intact so the user can retry.
func (s *Session) Submit(ctx context.Context) (*models.QuizAttempt, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, apperrors.ErrSubmissionInFlight
	}
	if s.state != StateInProgress {
		s.mu.Unlock()
		return nil, apperrors.ErrQuizNotInProgress
	}
	if len(s.quiz.Questions) == 0 {
		s.mu.Unlock()
		return nil, apperrors.ErrQuizHasNoQuestions
	}
	if len(s.answers) != len(s.quiz.Questions) {
		s.mu.Unlock()
		return nil, apperrors.ErrQuizNotAllAnswered
	}

	answers := make([]string, len(s.quiz.Questions))
	for i, q := range s.quiz.Questions {
		answers[i] = s.answers[q.ID]
	}
	quizID := s.quiz.ID
	s.state = StateSubmitting
	s.mu.Unlock()

	attempt, err := s.submitter.SubmitQuiz(ctx, quizID, answers)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// No data loss: the answer map is untouched and the user can retry.
		s.state = StateInProgress
		s.lastErr = apperrors.UserMessage(err)
		s.logger.LogError(err, "quiz submission failed", "quiz_id", quizID)
		return nil, err
	}

	s.state = StateCompleted
	s.result = attempt
	s.lastErr = ""

	s.logger.Info("quiz submitted",
		"quiz_id", quizID,
		"attempt_id", attempt.ID,
		"score", attempt.Score,
		"passed", s.passed(attempt))

	if s.publisher != nil {
		event := events.NewUIEvent(events.EventQuizSubmitted, events.QuizSubmittedEvent{
			QuizID:    quizID,
			AttemptID: attempt.ID,
			Score:     attempt.Score,
			Passed:    s.passed(attempt),
		})
		if err := s.publisher.PublishUIEvent(ctx, event); err != nil {
			s.logger.Warn("failed to publish quiz submitted event", "error", err)
		}
	}
	return attempt, nil
}

// ===== RESULT =====

// Result returns the scored attempt after a successful submission.
func (s *Session) Result() (*models.QuizAttempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCompleted || s.result == nil {
		return nil, false
	}
	return s.result, true
}

// Passed reports the displayed pass/fail state: score >= passingScore.
func (s *Session) Passed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return false
	}
	return s.passed(s.result)
}

func (s *Session) passed(attempt *models.QuizAttempt) bool {
	return models.IsPassing(attempt.Score, s.quiz.PassingScore)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Quiz() models.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}

// Error returns the current banner text, empty when there is none.
func (s *Session) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *Session) findQuestion(questionID string) (models.QuizQuestion, bool) {
	for _, q := range s.quiz.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return models.QuizQuestion{}, false
}

func hasOption(question models.QuizQuestion, optionText string) bool {
	for _, opt := range question.Options {
		if opt.Text == optionText {
			return true
		}
	}
	return false
}
