package admin

import (
	"context"

	"github.com/coursemaster/client-service/internal/api"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
	"github.com/coursemaster/client-service/internal/validator"
)

// API is the slice of the API client the admin screens need.
type API interface {
	AdminStats(ctx context.Context) (*models.AdminStats, error)
	AdminEnrollments(ctx context.Context, filter api.EnrollmentFilter) ([]models.Enrollment, error)
	CreateCourse(ctx context.Context, req api.CreateCourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, courseID string, req api.CreateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, courseID string) error
	CreateLesson(ctx context.Context, req api.CreateLessonRequest) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, lessonID string, req api.CreateLessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID string) error
	CreateBatch(ctx context.Context, req api.CreateBatchRequest) (*models.Batch, error)
	UpdateBatch(ctx context.Context, batchID string, req api.CreateBatchRequest) (*models.Batch, error)
	DeleteBatch(ctx context.Context, batchID string) error
}

// Service backs the admin CRUD screens. Payloads are validated locally before
// any request goes out; the server remains authoritative for everything else.
// Role is only reflected here, never enforced.
type Service struct {
	api       API
	logger    utils.Logger
	validator *validator.Validator
}

func NewService(apiClient API, logger utils.Logger, v *validator.Validator) *Service {
	return &Service{
		api:       apiClient,
		logger:    logger,
		validator: v,
	}
}

// Stats fetches the aggregate dashboard counts.
func (s *Service) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.api.AdminStats(ctx)
}

// Enrollments lists enrollments across students, optionally filtered by
// course, student or status.
func (s *Service) Enrollments(ctx context.Context, filter api.EnrollmentFilter) ([]models.Enrollment, error) {
	if err := s.validator.Validate(filter); err != nil {
		return nil, err
	}
	return s.api.AdminEnrollments(ctx, filter)
}

// ===== COURSE CRUD =====

func (s *Service) CreateCourse(ctx context.Context, req api.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	course, err := s.api.CreateCourse(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("course created", "course_id", course.ID, "title", course.Title)
	return course, nil
}

func (s *Service) UpdateCourse(ctx context.Context, courseID string, req api.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.api.UpdateCourse(ctx, courseID, req)
}

func (s *Service) DeleteCourse(ctx context.Context, courseID string) error {
	return s.api.DeleteCourse(ctx, courseID)
}

// ===== LESSON CRUD =====

func (s *Service) CreateLesson(ctx context.Context, req api.CreateLessonRequest) (*models.Lesson, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.api.CreateLesson(ctx, req)
}

func (s *Service) UpdateLesson(ctx context.Context, lessonID string, req api.CreateLessonRequest) (*models.Lesson, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.api.UpdateLesson(ctx, lessonID, req)
}

func (s *Service) DeleteLesson(ctx context.Context, lessonID string) error {
	return s.api.DeleteLesson(ctx, lessonID)
}

// ===== BATCH CRUD =====

func (s *Service) CreateBatch(ctx context.Context, req api.CreateBatchRequest) (*models.Batch, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.api.CreateBatch(ctx, req)
}

func (s *Service) UpdateBatch(ctx context.Context, batchID string, req api.CreateBatchRequest) (*models.Batch, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.api.UpdateBatch(ctx, batchID, req)
}

func (s *Service) DeleteBatch(ctx context.Context, batchID string) error {
	return s.api.DeleteBatch(ctx, batchID)
}
