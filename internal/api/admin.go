package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/coursemaster/client-service/internal/models"
)

// ===== ADMIN STATS =====

type adminStatsResponse struct {
	Stats models.AdminStats `json:"stats"`
}

// AdminStats fetches the aggregate dashboard counts.
func (c *Client) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var resp adminStatsResponse
	if err := c.get(ctx, "/admin/stats", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get admin stats: %w", err)
	}
	return &resp.Stats, nil
}

// EnrollmentFilter narrows the admin enrollment listing. Empty fields are
// omitted from the request.
type EnrollmentFilter struct {
	CourseID  string `json:"courseId"`
	StudentID string `json:"studentId"`
	Status    string `json:"status" validate:"omitempty,enrollment_status"`
}

type enrollmentListResponse struct {
	Data []models.Enrollment `json:"data"`
}

// AdminEnrollments lists enrollments across students, optionally filtered.
func (c *Client) AdminEnrollments(ctx context.Context, filter EnrollmentFilter) ([]models.Enrollment, error) {
	query := url.Values{}
	if filter.CourseID != "" {
		query.Set("courseId", filter.CourseID)
	}
	if filter.StudentID != "" {
		query.Set("studentId", filter.StudentID)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var resp enrollmentListResponse
	if err := c.get(ctx, "/admin/enrollments", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return resp.Data, nil
}

// ===== COURSE CRUD =====

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required,max=2000"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Instructor  string  `json:"instructor" validate:"required"`
	Image       string  `json:"image,omitempty" validate:"omitempty,url"`
}

func (c *Client) CreateCourse(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	var course models.Course
	if err := c.post(ctx, "/admin/courses", req, &course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	c.invalidateCache(ctx, "courses:*")
	return &course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, courseID string, req CreateCourseRequest) (*models.Course, error) {
	var course models.Course
	if err := c.put(ctx, "/admin/courses/"+courseID, req, &course); err != nil {
		return nil, fmt.Errorf("failed to update course %s: %w", courseID, err)
	}
	c.invalidateCache(ctx, "courses:*")
	return &course, nil
}

func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	if err := c.delete(ctx, "/admin/courses/"+courseID); err != nil {
		return fmt.Errorf("failed to delete course %s: %w", courseID, err)
	}
	c.invalidateCache(ctx, "courses:*")
	return nil
}

// ===== LESSON CRUD =====

type CreateLessonRequest struct {
	CourseID string `json:"courseId" validate:"required"`
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Content  string `json:"content" validate:"required"`
	VideoURL string `json:"videoUrl,omitempty" validate:"omitempty,url"`
	Order    int    `json:"order" validate:"gte=0"`
}

func (c *Client) CreateLesson(ctx context.Context, req CreateLessonRequest) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.post(ctx, "/admin/lessons", req, &lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	c.invalidateCache(ctx, "courses:detail:"+req.CourseID)
	return &lesson, nil
}

func (c *Client) UpdateLesson(ctx context.Context, lessonID string, req CreateLessonRequest) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.put(ctx, "/admin/lessons/"+lessonID, req, &lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson %s: %w", lessonID, err)
	}
	c.invalidateCache(ctx, "courses:detail:*")
	return &lesson, nil
}

func (c *Client) DeleteLesson(ctx context.Context, lessonID string) error {
	if err := c.delete(ctx, "/admin/lessons/"+lessonID); err != nil {
		return fmt.Errorf("failed to delete lesson %s: %w", lessonID, err)
	}
	c.invalidateCache(ctx, "courses:detail:*")
	return nil
}

// ===== BATCH CRUD =====

type CreateBatchRequest struct {
	CourseID    string    `json:"courseId" validate:"required"`
	Name        string    `json:"name" validate:"required,min=1,max=200"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	Schedule    string    `json:"schedule,omitempty"`
	MaxStudents int       `json:"maxStudents,omitempty" validate:"omitempty,min=1"`
}

func (c *Client) CreateBatch(ctx context.Context, req CreateBatchRequest) (*models.Batch, error) {
	var batch models.Batch
	if err := c.post(ctx, "/admin/batches", req, &batch); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}
	return &batch, nil
}

func (c *Client) UpdateBatch(ctx context.Context, batchID string, req CreateBatchRequest) (*models.Batch, error) {
	var batch models.Batch
	if err := c.put(ctx, "/admin/batches/"+batchID, req, &batch); err != nil {
		return nil, fmt.Errorf("failed to update batch %s: %w", batchID, err)
	}
	return &batch, nil
}

func (c *Client) DeleteBatch(ctx context.Context, batchID string) error {
	if err := c.delete(ctx, "/admin/batches/"+batchID); err != nil {
		return fmt.Errorf("failed to delete batch %s: %w", batchID, err)
	}
	return nil
}
