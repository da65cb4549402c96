package assignments

import (
	"context"

	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
	"github.com/coursemaster/client-service/internal/validator"
)

// API is the slice of the API client the assignment flows need.
type API interface {
	AssignmentsByCourse(ctx context.Context, courseID string) ([]models.Assignment, error)
	Submissions(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error)
	SubmitAssignment(ctx context.Context, assignmentID, answer, fileLink string) (*models.AssignmentSubmission, error)
}

// Service loads a course's assignments with the student's submissions
// attached and handles submission with local validation.
type Service struct {
	api       API
	logger    utils.Logger
	validator *validator.Validator
}

func NewService(api API, logger utils.Logger, v *validator.Validator) *Service {
	return &Service{
		api:       api,
		logger:    logger,
		validator: v,
	}
}

// LoadWithSubmissions pairs each assignment with the student's submission, if
// one exists. Absence of a submission is a normal state carried as an
// explicit Optional, never inferred from zero values.
func (s *Service) LoadWithSubmissions(ctx context.Context, courseID, studentID string) ([]models.AssignmentWithSubmission, error) {
	assignments, err := s.api.AssignmentsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	out := make([]models.AssignmentWithSubmission, 0, len(assignments))
	for _, a := range assignments {
		entry := models.AssignmentWithSubmission{
			Assignment: a,
			Submission: models.None[models.AssignmentSubmission](),
		}
		submissions, err := s.api.Submissions(ctx, a.ID)
		if err != nil {
			// The listing still renders; this entry shows no submission.
			s.logger.Warn("failed to load submissions", "assignment_id", a.ID, "error", err)
		} else {
			for _, sub := range submissions {
				if sub.StudentID == studentID {
					entry.Submission = models.Some(sub)
					break
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// SubmitRequest is the student submission payload, validated locally before
// any request is sent.
type SubmitRequest struct {
	AssignmentID string `json:"assignmentId" validate:"required"`
	Answer       string `json:"answer" validate:"required,min=1"`
	FileLink     string `json:"fileLink" validate:"omitempty,url"`
}

// Submit validates and sends the student's answer.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.AssignmentSubmission, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	submission, err := s.api.SubmitAssignment(ctx, req.AssignmentID, req.Answer, req.FileLink)
	if err != nil {
		s.logger.LogError(err, "assignment submission failed", "assignment_id", req.AssignmentID)
		return nil, err
	}
	s.logger.Info("assignment submitted",
		"assignment_id", req.AssignmentID,
		"submission_id", submission.ID)
	return submission, nil
}
