package api

import (
	"context"
	"fmt"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/models"
)

// Enroll enrolls the current user in a course and returns the new enrollment.
func (c *Client) Enroll(ctx context.Context, courseID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := c.post(ctx, "/students/enrollments/"+courseID, nil, &enrollment); err != nil {
		return nil, fmt.Errorf("failed to enroll in course %s: %w", courseID, err)
	}
	return &enrollment, nil
}

// MyEnrollments lists the current user's enrollments.
func (c *Client) MyEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := c.get(ctx, "/students/enrollments", nil, &enrollments); err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

// GetEnrollment fetches one enrollment by id.
func (c *Client) GetEnrollment(ctx context.Context, enrollmentID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := c.get(ctx, "/students/enrollments/"+enrollmentID, nil, &enrollment); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment %s: %w", enrollmentID, err)
	}
	return &enrollment, nil
}

// MarkLessonComplete records lessonID as completed on the enrollment and
// returns the updated record. Progress recomputation is server-side.
func (c *Client) MarkLessonComplete(ctx context.Context, enrollmentID, lessonID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	path := "/students/enrollments/" + enrollmentID + "/lessons/" + lessonID
	if err := c.put(ctx, path, nil, &enrollment); err != nil {
		return nil, fmt.Errorf("failed to mark lesson %s complete: %w", lessonID, err)
	}
	return &enrollment, nil
}
