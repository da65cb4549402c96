package report

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/coursemaster/client-service/internal/api"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
)

type fakeExportAPI struct {
	course      models.Course
	enrollments []models.Enrollment
	assignments []models.Assignment
	submissions map[string][]models.AssignmentSubmission
}

func (f *fakeExportAPI) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	return &f.course, nil
}

func (f *fakeExportAPI) AdminEnrollments(ctx context.Context, filter api.EnrollmentFilter) ([]models.Enrollment, error) {
	return f.enrollments, nil
}

func (f *fakeExportAPI) AssignmentsByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	return f.assignments, nil
}

func (f *fakeExportAPI) AdminSubmissions(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error) {
	return f.submissions[assignmentID], nil
}

func newTestExporter(exportAPI ExportAPI) *Exporter {
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	return NewExporter(exportAPI, logger)
}

func TestExportEnrollments(t *testing.T) {
	enrolled := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	exportAPI := &fakeExportAPI{
		course: models.Course{
			ID:      "course-1",
			Title:   "Intro to Go",
			Lessons: []models.Lesson{{ID: "l1"}, {ID: "l2"}, {ID: "l3"}, {ID: "l4"}},
		},
		enrollments: []models.Enrollment{
			{
				ID:               "e1",
				StudentID:        "student-1",
				Status:           models.EnrollmentActive,
				Progress:         50,
				CompletedLessons: []string{"l1", "l2"},
				EnrollmentDate:   enrolled,
			},
		},
	}
	e := newTestExporter(exportAPI)

	data, err := e.ExportEnrollments(context.Background(), "course-1")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Enrollments", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Enrollment ID", header)

	id, err := f.GetCellValue("Enrollments", "A2")
	require.NoError(t, err)
	assert.Equal(t, "e1", id)

	completed, err := f.GetCellValue("Enrollments", "E2")
	require.NoError(t, err)
	assert.Equal(t, "2", completed)

	total, err := f.GetCellValue("Enrollments", "F2")
	require.NoError(t, err)
	assert.Equal(t, "4", total)
}

func TestExportGradesOneSheetPerAssignment(t *testing.T) {
	grade := 85
	gradedAt := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	exportAPI := &fakeExportAPI{
		assignments: []models.Assignment{
			{ID: "as-1", CourseID: "course-1", Title: "Essay"},
			{ID: "as-2", CourseID: "course-1", Title: "Project"},
		},
		submissions: map[string][]models.AssignmentSubmission{
			"as-1": {
				{
					ID:          "sub-1",
					StudentID:   "student-1",
					SubmittedAt: gradedAt.Add(-24 * time.Hour),
					Grade:       &grade,
					Feedback:    "solid work",
					GradedAt:    &gradedAt,
				},
			},
		},
	}
	e := newTestExporter(exportAPI)

	data, err := e.ExportGrades(context.Background(), "course-1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "A1 - Essay")
	assert.Contains(t, sheets, "A2 - Project")

	gradeCell, err := f.GetCellValue("A1 - Essay", "D2")
	require.NoError(t, err)
	assert.Equal(t, "85", gradeCell)

	feedback, err := f.GetCellValue("A1 - Essay", "E2")
	require.NoError(t, err)
	assert.Equal(t, "solid work", feedback)

	// The second assignment has no submissions, only the header row.
	empty, err := f.GetCellValue("A2 - Project", "A2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
