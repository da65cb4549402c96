package assignments

import (
	"context"
	"sync"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
	"github.com/coursemaster/client-service/internal/validator"
)

// GradingAPI is the slice of the API client the gradebook needs.
type GradingAPI interface {
	AdminSubmissions(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error)
	GradeSubmission(ctx context.Context, submissionID string, grade int, feedback string) (*models.AssignmentSubmission, error)
}

// Gradebook is the admin grading screen state: all submissions for one
// assignment. A successful grade call patches only the matching local list
// entry in place; a failure leaves the list untouched and surfaces a banner.
type Gradebook struct {
	mu        sync.Mutex
	api       GradingAPI
	logger    utils.Logger
	validator *validator.Validator

	assignmentID string
	submissions  []models.AssignmentSubmission
	lastErr      string
}

func NewGradebook(api GradingAPI, logger utils.Logger, v *validator.Validator, assignmentID string) *Gradebook {
	return &Gradebook{
		api:          api,
		logger:       logger,
		validator:    v,
		assignmentID: assignmentID,
	}
}

// Load fetches all submissions for the assignment.
func (g *Gradebook) Load(ctx context.Context) error {
	submissions, err := g.api.AdminSubmissions(ctx, g.assignmentID)
	if err != nil {
		g.mu.Lock()
		g.lastErr = apperrors.UserMessage(err)
		g.mu.Unlock()
		return err
	}
	g.mu.Lock()
	g.submissions = submissions
	g.lastErr = ""
	g.mu.Unlock()
	return nil
}

// GradeRequest is the grading payload, validated locally.
type GradeRequest struct {
	SubmissionID string `json:"submissionId" validate:"required"`
	Grade        int    `json:"grade" validate:"gte=0,lte=100"`
	Feedback     string `json:"feedback" validate:"max=2000"`
}

// Grade records a grade and feedback, then patches the local entry matching
// the submission id. No rollback is modeled: on failure only the banner
// changes.
func (g *Gradebook) Grade(ctx context.Context, req GradeRequest) error {
	if err := g.validator.Validate(req); err != nil {
		return err
	}

	graded, err := g.api.GradeSubmission(ctx, req.SubmissionID, req.Grade, req.Feedback)
	if err != nil {
		g.mu.Lock()
		g.lastErr = apperrors.UserMessage(err)
		g.mu.Unlock()
		g.logger.LogError(err, "grading failed", "submission_id", req.SubmissionID)
		return err
	}

	g.mu.Lock()
	for i := range g.submissions {
		if g.submissions[i].ID == req.SubmissionID {
			g.submissions[i] = *graded
			break
		}
	}
	g.lastErr = ""
	g.mu.Unlock()

	g.logger.Info("submission graded",
		"submission_id", req.SubmissionID,
		"grade", req.Grade)
	return nil
}

// Submissions returns the current list.
func (g *Gradebook) Submissions() []models.AssignmentSubmission {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.AssignmentSubmission, len(g.submissions))
	copy(out, g.submissions)
	return out
}

// Error returns the current banner text, empty when there is none.
func (g *Gradebook) Error() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

func (g *Gradebook) ClearError() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastErr = ""
}
