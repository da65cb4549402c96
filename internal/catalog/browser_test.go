package catalog

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursemaster/client-service/internal/api"
	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/events"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
	"github.com/coursemaster/client-service/internal/validator"
)

// fakeLister records every request and replies via a configurable handler.
type fakeLister struct {
	mu       sync.Mutex
	requests []api.ListCoursesParams
	handler  func(params api.ListCoursesParams) (*models.CourseList, error)
}

func (f *fakeLister) ListCourses(ctx context.Context, params api.ListCoursesParams) (*models.CourseList, error) {
	f.mu.Lock()
	f.requests = append(f.requests, params)
	f.mu.Unlock()
	if f.handler != nil {
		return f.handler(params)
	}
	return &models.CourseList{
		Items: []models.Course{{ID: "c1", Title: "Intro to Go"}},
		Pagination: models.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: 60,
			Pages: 5,
		},
	}, nil
}

func newTestBrowser(t *testing.T, lister *fakeLister) *Browser {
	t.Helper()
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	return NewBrowser(lister, publisher, logger, validator.New())
}

func TestFilterChangesResetPage(t *testing.T) {
	lister := &fakeLister{}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	require.NoError(t, b.Refresh(ctx))
	require.NoError(t, b.SetPage(ctx, 3))
	require.Equal(t, 3, b.Page())

	tests := []struct {
		name   string
		mutate func() error
	}{
		{"search", func() error { return b.SetSearch(ctx, "python") }},
		{"category", func() error { return b.SetCategory(ctx, "programming") }},
		{"price range", func() error {
			min := 10.0
			return b.SetPriceRange(ctx, &min, nil)
		}},
		{"sort", func() error { return b.SetSort(ctx, models.SortPriceAsc) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, b.SetPage(ctx, 3))
			require.NoError(t, tt.mutate())

			last := lister.requests[len(lister.requests)-1]
			assert.Equal(t, 1, last.Page, "filter change must reset page to 1")
		})
	}
}

func TestPageChangePreservesFilters(t *testing.T) {
	lister := &fakeLister{}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	require.NoError(t, b.SetSearch(ctx, "python"))
	require.NoError(t, b.SetCategory(ctx, "programming"))
	require.NoError(t, b.SetSort(ctx, models.SortPriceAsc))

	require.NoError(t, b.SetPage(ctx, 2))

	last := lister.requests[len(lister.requests)-1]
	assert.Equal(t, 2, last.Page)
	assert.Equal(t, "python", last.Search)
	assert.Equal(t, "programming", last.Category)
	assert.Equal(t, models.SortPriceAsc, last.Sort)
}

func TestSortChangeKeepsOtherFilters(t *testing.T) {
	lister := &fakeLister{}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	require.NoError(t, b.SetSearch(ctx, "python"))
	require.NoError(t, b.SetCategory(ctx, "programming"))
	require.NoError(t, b.SetSort(ctx, models.SortPriceAsc))

	// Changing sort back to newest resets only the page.
	require.NoError(t, b.SetSort(ctx, models.SortNewest))

	last := lister.requests[len(lister.requests)-1]
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, models.SortNewest, last.Sort)
	assert.Equal(t, "python", last.Search)
	assert.Equal(t, "programming", last.Category)
}

func TestClearFiltersResetsToDefaults(t *testing.T) {
	lister := &fakeLister{}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	min, max := 10.0, 50.0
	require.NoError(t, b.SetSearch(ctx, "python"))
	require.NoError(t, b.SetPriceRange(ctx, &min, &max))
	require.NoError(t, b.ClearFilters(ctx))

	last := lister.requests[len(lister.requests)-1]
	assert.Equal(t, 1, last.Page)
	assert.Empty(t, last.Search)
	assert.Empty(t, last.Category)
	assert.Nil(t, last.MinPrice)
	assert.Nil(t, last.MaxPrice)
	assert.Equal(t, models.SortNewest, last.Sort)
}

func TestPaginationBounds(t *testing.T) {
	lister := &fakeLister{}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	require.NoError(t, b.Refresh(ctx))
	require.Equal(t, 5, b.Pagination().Pages)

	assert.False(t, b.CanPreviousPage(), "previous disabled on page 1")
	assert.True(t, b.CanNextPage())

	err := b.SetPage(ctx, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	err = b.SetPage(ctx, 6)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	require.NoError(t, b.SetPage(ctx, 5))
	assert.False(t, b.CanNextPage(), "next disabled on last page")
	assert.True(t, b.CanPreviousPage())

	// No out-of-range page ever reached the lister.
	for _, req := range lister.requests {
		assert.GreaterOrEqual(t, req.Page, 1)
		assert.LessOrEqual(t, req.Page, 5)
	}
}

func TestFailureKeepsPreviousResults(t *testing.T) {
	lister := &fakeLister{}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	require.NoError(t, b.Refresh(ctx))
	require.Len(t, b.Items(), 1)

	lister.handler = func(api.ListCoursesParams) (*models.CourseList, error) {
		return nil, apperrors.NewAPIError(500, "catalog unavailable")
	}
	err := b.SetSearch(ctx, "python")
	require.Error(t, err)

	assert.Len(t, b.Items(), 1, "previous result set must stay on screen")
	assert.Equal(t, "catalog unavailable", b.Error())

	b.ClearError()
	assert.Empty(t, b.Error())
}

func TestFailureBeforeFirstLoadShowsEmptyState(t *testing.T) {
	lister := &fakeLister{
		handler: func(api.ListCoursesParams) (*models.CourseList, error) {
			return nil, apperrors.NewAPIError(500, "")
		},
	}
	b := newTestBrowser(t, lister)

	err := b.Refresh(context.Background())
	require.Error(t, err)
	assert.Nil(t, b.Items())
	assert.False(t, b.HasLoaded())
	assert.Equal(t, apperrors.FallbackRemoteMessage, b.Error())
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	lister := &fakeLister{}
	lister.handler = func(params api.ListCoursesParams) (*models.CourseList, error) {
		if params.Search == "slow" {
			close(started)
			<-release
			return &models.CourseList{
				Items:      []models.Course{{ID: "stale", Title: "Stale"}},
				Pagination: models.Pagination{Page: 1, Pages: 1, Total: 1, Limit: DefaultLimit},
			}, nil
		}
		return &models.CourseList{
			Items:      []models.Course{{ID: "fresh", Title: "Fresh"}},
			Pagination: models.Pagination{Page: 1, Pages: 1, Total: 1, Limit: DefaultLimit},
		}, nil
	}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	done := make(chan error)
	go func() {
		done <- b.SetSearch(ctx, "slow")
	}()
	<-started

	// A newer query commits while the first is still in flight.
	require.NoError(t, b.SetSearch(ctx, "fresh"))
	close(release)
	require.NoError(t, <-done)

	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].ID, "stale response must not overwrite the newer one")
}

func TestInvalidSortKeepsResultsAndSetsBanner(t *testing.T) {
	lister := &fakeLister{}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	require.NoError(t, b.Refresh(ctx))
	require.Len(t, b.Items(), 1)
	issued := len(lister.requests)

	err := b.SetSort(ctx, models.SortOption("oldest"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	assert.Len(t, lister.requests, issued, "rejected query must not reach the lister")
	assert.Len(t, b.Items(), 1, "previous result set stays on screen")
	assert.NotEmpty(t, b.Error(), "validation failures surface through the banner")
}

func TestInvalidSortDoesNotDiscardInFlightResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	lister := &fakeLister{}
	lister.handler = func(params api.ListCoursesParams) (*models.CourseList, error) {
		if params.Search == "slow" {
			close(started)
			<-release
		}
		return &models.CourseList{
			Items:      []models.Course{{ID: "slow-result", Title: "Slow"}},
			Pagination: models.Pagination{Page: 1, Pages: 1, Total: 1, Limit: DefaultLimit},
		}, nil
	}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	done := make(chan error)
	go func() {
		done <- b.SetSearch(ctx, "slow")
	}()
	<-started

	// The rejected mutation issues no request, so it must not bump the
	// sequence and orphan the query still in flight.
	err := b.SetSort(ctx, models.SortOption("oldest"))
	require.Error(t, err)

	close(release)
	require.NoError(t, <-done)

	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "slow-result", items[0].ID, "in-flight response still commits")
}

func TestExampleScenarioSortChange(t *testing.T) {
	// Filters {search:"python", category:"programming", sort:price_asc, page:1};
	// changing sort to newest must request page=1 with other filters intact.
	lister := &fakeLister{}
	b := newTestBrowser(t, lister)
	ctx := context.Background()

	require.NoError(t, b.SetSearch(ctx, "python"))
	require.NoError(t, b.SetCategory(ctx, "programming"))
	require.NoError(t, b.SetSort(ctx, models.SortPriceAsc))
	require.NoError(t, b.SetSort(ctx, models.SortNewest))

	last := lister.requests[len(lister.requests)-1]
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, models.SortNewest, last.Sort)
	assert.Equal(t, "python", last.Search)
	assert.Equal(t, "programming", last.Category)
}
