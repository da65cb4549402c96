package api

import (
	"context"
	"fmt"
	"net/url"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/models"
)

// QuizzesByCourse lists a course's quizzes. Question options carry text only;
// correctness never leaves the server.
func (c *Client) QuizzesByCourse(ctx context.Context, courseID string) ([]models.Quiz, error) {
	query := url.Values{"courseId": {courseID}}
	var quizzes []models.Quiz
	if err := c.get(ctx, "/quizzes", query, &quizzes); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for course %s: %w", courseID, err)
	}
	return quizzes, nil
}

// GetQuiz fetches one quiz definition by id.
func (c *Client) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := c.get(ctx, "/quizzes/"+quizID, nil, &quiz); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}
	return &quiz, nil
}

// MyAttempt fetches the current user's attempt for a quiz. A quiz the user
// has not attempted yet is a normal empty state, reported as an absent
// Optional, never as an error.
func (c *Client) MyAttempt(ctx context.Context, quizID string) (models.Optional[models.QuizAttempt], error) {
	var attempt models.QuizAttempt
	if err := c.get(ctx, "/quizzes/"+quizID+"/myattempt", nil, &attempt); err != nil {
		if apperrors.IsNotFound(err) {
			return models.None[models.QuizAttempt](), nil
		}
		return models.None[models.QuizAttempt](), fmt.Errorf("failed to get attempt for quiz %s: %w", quizID, err)
	}
	return models.Some(attempt), nil
}

// Attempts lists all of the current user's attempts for a quiz.
func (c *Client) Attempts(ctx context.Context, quizID string) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	if err := c.get(ctx, "/quizzes/"+quizID+"/attempts", nil, &attempts); err != nil {
		return nil, fmt.Errorf("failed to list attempts for quiz %s: %w", quizID, err)
	}
	return attempts, nil
}

type submitQuizRequest struct {
	Answers []string `json:"answers"`
}

// SubmitQuiz submits the ordered answer array (one entry per question in
// quiz-definition order) and returns the scored attempt.
func (c *Client) SubmitQuiz(ctx context.Context, quizID string, answers []string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	body := submitQuizRequest{Answers: answers}
	if err := c.post(ctx, "/quizzes/"+quizID+"/submit", body, &attempt); err != nil {
		return nil, fmt.Errorf("failed to submit quiz %s: %w", quizID, err)
	}
	return &attempt, nil
}
