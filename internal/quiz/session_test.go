package quiz

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/events"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
)

type fakeSubmitter struct {
	submitted [][]string
	quizIDs   []string
	handler   func(quizID string, answers []string) (*models.QuizAttempt, error)
}

func (f *fakeSubmitter) SubmitQuiz(ctx context.Context, quizID string, answers []string) (*models.QuizAttempt, error) {
	f.quizIDs = append(f.quizIDs, quizID)
	f.submitted = append(f.submitted, answers)
	if f.handler != nil {
		return f.handler(quizID, answers)
	}
	return &models.QuizAttempt{
		ID:          "attempt-1",
		QuizID:      quizID,
		Answers:     answers,
		Score:       67,
		Passed:      true,
		AttemptedAt: time.Now(),
	}, nil
}

func threeQuestionQuiz() models.Quiz {
	return models.Quiz{
		ID:           "quiz-1",
		CourseID:     "course-1",
		Title:        "Basics",
		PassingScore: 60,
		Questions: []models.QuizQuestion{
			{ID: "q1", Question: "First?", Options: []models.QuizOption{{ID: "o1", Text: "A"}, {ID: "o2", Text: "B"}}},
			{ID: "q2", Question: "Second?", Options: []models.QuizOption{{ID: "o3", Text: "B"}, {ID: "o4", Text: "C"}}},
			{ID: "q3", Question: "Third?", Options: []models.QuizOption{{ID: "o5", Text: "C"}, {ID: "o6", Text: "D"}}},
		},
	}
}

func newTestSession(t *testing.T, quiz models.Quiz, submitter Submitter) *Session {
	t.Helper()
	slogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewSession(quiz, submitter, events.NewMockEventPublisher(slogger), utils.NewSlogLogger(slogger))
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestSession(t, threeQuestionQuiz(), &fakeSubmitter{})
	ctx := context.Background()

	assert.Equal(t, StateNotStarted, s.State())
	require.NoError(t, s.Start(ctx))
	assert.Equal(t, StateInProgress, s.State())

	// Starting twice is rejected
	assert.ErrorIs(t, s.Start(ctx), apperrors.ErrQuizAlreadyStarted)
}

func TestSubmitGate(t *testing.T) {
	s := newTestSession(t, threeQuestionQuiz(), &fakeSubmitter{})
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	assert.False(t, s.CanSubmit(), "no answers yet")

	require.NoError(t, s.SelectOption("q1", "A"))
	require.NoError(t, s.SelectOption("q2", "B"))
	assert.False(t, s.CanSubmit(), "q3 unanswered")
	assert.Equal(t, 2, s.AnsweredCount())

	_, err := s.Submit(ctx)
	assert.ErrorIs(t, err, apperrors.ErrQuizNotAllAnswered)

	require.NoError(t, s.SelectOption("q3", "C"))
	assert.True(t, s.CanSubmit(), "all three answered")
}

func TestLastWriteWins(t *testing.T) {
	s := newTestSession(t, threeQuestionQuiz(), &fakeSubmitter{})
	require.NoError(t, s.Start(context.Background()))

	require.NoError(t, s.SelectOption("q1", "B"))
	require.NoError(t, s.SelectOption("q1", "A"))

	answer, ok := s.Answer("q1")
	require.True(t, ok)
	assert.Equal(t, "A", answer)
	assert.Equal(t, 1, s.AnsweredCount(), "re-selection must not add a second answer")
}

func TestSelectOptionValidation(t *testing.T) {
	s := newTestSession(t, threeQuestionQuiz(), &fakeSubmitter{})

	// Not started yet
	assert.ErrorIs(t, s.SelectOption("q1", "A"), apperrors.ErrQuizNotInProgress)

	require.NoError(t, s.Start(context.Background()))

	err := s.SelectOption("missing", "A")
	assert.True(t, apperrors.IsValidation(err))

	err = s.SelectOption("q1", "Z")
	assert.True(t, apperrors.IsValidation(err), "option must belong to the question")
}

func TestNavigationBoundsAndPrefill(t *testing.T) {
	s := newTestSession(t, threeQuestionQuiz(), &fakeSubmitter{})
	require.NoError(t, s.Start(context.Background()))

	assert.False(t, s.HasPrevious())
	assert.True(t, s.HasNext())

	require.NoError(t, s.Previous()) // no-op at the first question
	assert.Equal(t, 0, s.CurrentIndex())

	require.NoError(t, s.SelectOption("q1", "A"))
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	assert.Equal(t, 2, s.CurrentIndex())
	assert.False(t, s.HasNext())

	require.NoError(t, s.Next()) // no-op at the last question
	assert.Equal(t, 2, s.CurrentIndex())

	// Revisiting a question pre-fills its recorded answer
	require.NoError(t, s.Previous())
	require.NoError(t, s.Previous())
	question, ok := s.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, "q1", question.ID)
	answer, ok := s.Answer(question.ID)
	require.True(t, ok)
	assert.Equal(t, "A", answer)
}

func TestSubmitPayloadIsOrdered(t *testing.T) {
	submitter := &fakeSubmitter{}
	s := newTestSession(t, threeQuestionQuiz(), submitter)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	// Answer out of navigation order
	require.NoError(t, s.SelectOption("q3", "C"))
	require.NoError(t, s.SelectOption("q1", "A"))
	require.NoError(t, s.SelectOption("q2", "B"))

	_, err := s.Submit(ctx)
	require.NoError(t, err)

	require.Len(t, submitter.submitted, 1)
	assert.Equal(t, []string{"A", "B", "C"}, submitter.submitted[0],
		"answers must follow quiz-definition question order")
	assert.Equal(t, []string{"quiz-1"}, submitter.quizIDs)
}

func TestSubmitFailureKeepsAnswers(t *testing.T) {
	submitter := &fakeSubmitter{
		handler: func(string, []string) (*models.QuizAttempt, error) {
			return nil, apperrors.NewAPIError(500, "scoring unavailable")
		},
	}
	s := newTestSession(t, threeQuestionQuiz(), submitter)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.SelectOption("q1", "A"))
	require.NoError(t, s.SelectOption("q2", "B"))
	require.NoError(t, s.SelectOption("q3", "C"))

	_, err := s.Submit(ctx)
	require.Error(t, err)

	assert.Equal(t, StateInProgress, s.State(), "failed submit returns to in progress")
	assert.Equal(t, 3, s.AnsweredCount(), "no data loss on failure")
	assert.Equal(t, "scoring unavailable", s.Error())

	// Retry with the same answers succeeds
	submitter.handler = nil
	attempt, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, 67, attempt.Score)
	assert.Empty(t, s.Error())
}

func TestPassBoundary(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		passed bool
	}{
		{"equal passes", 70, true},
		{"one below fails", 69, false},
		{"above passes", 90, true},
		{"zero threshold always passes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := threeQuestionQuiz()
			quiz.PassingScore = 70
			if tt.name == "zero threshold always passes" {
				quiz.PassingScore = 0
				tt.score = 0
			}
			submitter := &fakeSubmitter{
				handler: func(quizID string, answers []string) (*models.QuizAttempt, error) {
					return &models.QuizAttempt{ID: "a1", QuizID: quizID, Score: tt.score}, nil
				},
			}
			s := newTestSession(t, quiz, submitter)
			ctx := context.Background()
			require.NoError(t, s.Start(ctx))
			require.NoError(t, s.SelectOption("q1", "A"))
			require.NoError(t, s.SelectOption("q2", "B"))
			require.NoError(t, s.SelectOption("q3", "C"))

			_, err := s.Submit(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.passed, s.Passed())
		})
	}
}

func TestRetakeResetsSession(t *testing.T) {
	s := newTestSession(t, threeQuestionQuiz(), &fakeSubmitter{})
	ctx := context.Background()

	assert.Error(t, s.Retake(), "retake requires a completed session")

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.SelectOption("q1", "A"))
	require.NoError(t, s.SelectOption("q2", "B"))
	require.NoError(t, s.SelectOption("q3", "C"))
	_, err := s.Submit(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Retake())
	assert.Equal(t, StateNotStarted, s.State())
	_, ok := s.Result()
	assert.False(t, ok)

	require.NoError(t, s.Start(ctx))
	assert.Equal(t, 0, s.AnsweredCount(), "retake starts with a fresh answer map")
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestZeroQuestionQuizIsNotSubmittable(t *testing.T) {
	quiz := models.Quiz{ID: "empty", PassingScore: 50}
	s := newTestSession(t, quiz, &fakeSubmitter{})
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	assert.False(t, s.CanSubmit())
	_, err := s.Submit(ctx)
	assert.ErrorIs(t, err, apperrors.ErrQuizHasNoQuestions)
}

func TestExampleScenario(t *testing.T) {
	// Quiz with 3 questions, passingScore=60: Q1+Q2 answered leaves submit
	// disabled; answering Q3 enables it; server returns 67 -> Passed.
	submitter := &fakeSubmitter{
		handler: func(quizID string, answers []string) (*models.QuizAttempt, error) {
			return &models.QuizAttempt{ID: "a1", QuizID: quizID, Score: 67, CorrectAnswers: 2}, nil
		},
	}
	s := newTestSession(t, threeQuestionQuiz(), submitter)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	require.NoError(t, s.SelectOption("q1", "A"))
	require.NoError(t, s.SelectOption("q2", "B"))
	assert.False(t, s.CanSubmit())

	require.NoError(t, s.SelectOption("q3", "C"))
	assert.True(t, s.CanSubmit())

	attempt, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 67, attempt.Score)
	assert.True(t, s.Passed())
}
