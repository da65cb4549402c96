package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/coursemaster/client-service/internal/models"
)

// AssignmentsByCourse lists a course's assignments.
func (c *Client) AssignmentsByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	query := url.Values{"courseId": {courseID}}
	var assignments []models.Assignment
	if err := c.get(ctx, "/assignments", query, &assignments); err != nil {
		return nil, fmt.Errorf("failed to list assignments for course %s: %w", courseID, err)
	}
	return assignments, nil
}

type submitAssignmentRequest struct {
	Answer   string `json:"answer"`
	FileLink string `json:"fileLink,omitempty"`
}

// SubmitAssignment submits the student's free-text answer, with an optional
// external file link.
func (c *Client) SubmitAssignment(ctx context.Context, assignmentID, answer, fileLink string) (*models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	body := submitAssignmentRequest{Answer: answer, FileLink: fileLink}
	if err := c.post(ctx, "/assignments/"+assignmentID+"/submit", body, &submission); err != nil {
		return nil, fmt.Errorf("failed to submit assignment %s: %w", assignmentID, err)
	}
	return &submission, nil
}

// Submissions lists the current user's submissions for an assignment.
func (c *Client) Submissions(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error) {
	var submissions []models.AssignmentSubmission
	if err := c.get(ctx, "/assignments/"+assignmentID+"/submissions", nil, &submissions); err != nil {
		return nil, fmt.Errorf("failed to list submissions for assignment %s: %w", assignmentID, err)
	}
	return submissions, nil
}

// AdminSubmissions lists all submissions for an assignment (admin only).
func (c *Client) AdminSubmissions(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error) {
	query := url.Values{"assignmentId": {assignmentID}}
	var submissions []models.AssignmentSubmission
	if err := c.get(ctx, "/admin/submissions", query, &submissions); err != nil {
		return nil, fmt.Errorf("failed to list admin submissions: %w", err)
	}
	return submissions, nil
}

type gradeSubmissionRequest struct {
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback"`
}

// GradeSubmission records a grade and feedback on a submission (admin only).
func (c *Client) GradeSubmission(ctx context.Context, submissionID string, grade int, feedback string) (*models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	body := gradeSubmissionRequest{Grade: grade, Feedback: feedback}
	if err := c.post(ctx, "/admin/submissions/"+submissionID+"/grade", body, &submission); err != nil {
		return nil, fmt.Errorf("failed to grade submission %s: %w", submissionID, err)
	}
	return &submission, nil
}
