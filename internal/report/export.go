package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/coursemaster/client-service/internal/api"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
)

// ExportAPI is the slice of the API client the exporter needs.
type ExportAPI interface {
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	AdminEnrollments(ctx context.Context, filter api.EnrollmentFilter) ([]models.Enrollment, error)
	AdminSubmissions(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error)
	AssignmentsByCourse(ctx context.Context, courseID string) ([]models.Assignment, error)
}

// Exporter produces .xlsx workbooks for the admin screens.
type Exporter struct {
	api    ExportAPI
	logger utils.Logger
}

func NewExporter(api ExportAPI, logger utils.Logger) *Exporter {
	return &Exporter{api: api, logger: logger}
}

// ExportEnrollments writes one course's enrollment roster to an Excel
// workbook and returns the file bytes.
func (e *Exporter) ExportEnrollments(ctx context.Context, courseID string) ([]byte, error) {
	course, err := e.api.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	enrollments, err := e.api.AdminEnrollments(ctx, api.EnrollmentFilter{CourseID: courseID})
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollments: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Enrollments"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Enrollment ID", "Student ID", "Status", "Progress (%)",
		"Completed Lessons", "Total Lessons", "Enrolled At", "Completed At",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, enrollment := range enrollments {
		completedAt := ""
		if enrollment.CompletionDate != nil {
			completedAt = enrollment.CompletionDate.Format(time.RFC3339)
		}
		row := []interface{}{
			enrollment.ID,
			enrollment.StudentID,
			string(enrollment.Status),
			enrollment.Progress,
			len(enrollment.CompletedLessons),
			len(course.Lessons),
			enrollment.EnrollmentDate.Format(time.RFC3339),
			completedAt,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	e.logger.Info("enrollment report exported",
		"course_id", courseID,
		"rows", len(enrollments))
	return buf.Bytes(), nil
}

// ExportGrades writes every assignment submission for a course, one sheet per
// assignment, and returns the file bytes.
func (e *Exporter) ExportGrades(ctx context.Context, courseID string) ([]byte, error) {
	assignments, err := e.api.AssignmentsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	headers := []string{
		"Submission ID", "Student ID", "Submitted At", "Grade", "Feedback", "Graded At",
	}

	for sheetIndex, assignment := range assignments {
		sheetName := fmt.Sprintf("A%d - %.24s", sheetIndex+1, assignment.Title)
		index, err := f.NewSheet(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
		}
		if sheetIndex == 0 {
			f.SetActiveSheet(index)
		}

		for i, header := range headers {
			cell := fmt.Sprintf("%c1", 'A'+i)
			f.SetCellValue(sheetName, cell, header)
		}

		submissions, err := e.api.AdminSubmissions(ctx, assignment.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get submissions for assignment %s: %w", assignment.ID, err)
		}
		for rowIndex, sub := range submissions {
			grade := ""
			if sub.Grade != nil {
				grade = fmt.Sprintf("%d", *sub.Grade)
			}
			gradedAt := ""
			if sub.GradedAt != nil {
				gradedAt = sub.GradedAt.Format(time.RFC3339)
			}
			row := []interface{}{
				sub.ID,
				sub.StudentID,
				sub.SubmittedAt.Format(time.RFC3339),
				grade,
				sub.Feedback,
				gradedAt,
			}
			for colIndex, value := range row {
				cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
				f.SetCellValue(sheetName, cell, value)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	e.logger.Info("grade report exported",
		"course_id", courseID,
		"assignments", len(assignments))
	return buf.Bytes(), nil
}
