package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/coursemaster/client-service/internal/api"
	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/events"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
	"github.com/coursemaster/client-service/internal/validator"
)

// DefaultLimit matches the catalog page size of the web client.
const DefaultLimit = 12

// CourseLister is the slice of the API client the browser needs.
type CourseLister interface {
	ListCourses(ctx context.Context, params api.ListCoursesParams) (*models.CourseList, error)
}

// Filters is the catalog filter state. Nil prices mean "no bound".
type Filters struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     models.SortOption
}

// DefaultFilters returns the filter defaults used on first load and after
// ClearFilters.
func DefaultFilters() Filters {
	return Filters{Sort: models.SortNewest}
}

// Browser holds the catalog query state: filters, pagination cursor and the
// last committed result page. Any filter change resets the page to 1 and
// re-queries; page moves re-query with filters unchanged. A failed query
// keeps the previous result set on screen and surfaces a banner.
//
// Overlapping queries are resolved with a monotonically increasing sequence
// number: only the response to the most recently issued request is committed,
// so a fast series of filter edits cannot commit out of order.
type Browser struct {
	mu        sync.Mutex
	lister    CourseLister
	publisher events.EventPublisher
	logger    utils.Logger
	validator *validator.Validator

	filters    Filters
	page       int
	limit      int
	items      []models.Course
	pagination models.Pagination
	loaded     bool
	lastErr    string
	seq        uint64
}

func NewBrowser(lister CourseLister, publisher events.EventPublisher, logger utils.Logger, v *validator.Validator) *Browser {
	return &Browser{
		lister:    lister,
		publisher: publisher,
		logger:    logger,
		validator: v,
		filters:   DefaultFilters(),
		page:      1,
		limit:     DefaultLimit,
	}
}

// ===== FILTER MUTATORS =====

// SetSearch updates the search term, resets to page 1 and re-queries.
func (b *Browser) SetSearch(ctx context.Context, search string) error {
	b.mu.Lock()
	b.filters.Search = search
	b.page = 1
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// SetCategory updates the category filter, resets to page 1 and re-queries.
func (b *Browser) SetCategory(ctx context.Context, category string) error {
	b.mu.Lock()
	b.filters.Category = category
	b.page = 1
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// SetPriceRange updates both price bounds, resets to page 1 and re-queries.
func (b *Browser) SetPriceRange(ctx context.Context, minPrice, maxPrice *float64) error {
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return apperrors.NewValidationError("minPrice", "must not exceed maxPrice", *minPrice)
	}
	b.mu.Lock()
	b.filters.MinPrice = minPrice
	b.filters.MaxPrice = maxPrice
	b.page = 1
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// SetSort updates the sort order, resets to page 1 and re-queries.
func (b *Browser) SetSort(ctx context.Context, sort models.SortOption) error {
	b.mu.Lock()
	b.filters.Sort = sort
	b.page = 1
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// SetPage moves the pagination cursor without touching filters. Out-of-range
// pages are rejected locally so the server never sees page < 1 or
// page > pages.
func (b *Browser) SetPage(ctx context.Context, page int) error {
	b.mu.Lock()
	if page < 1 {
		b.mu.Unlock()
		return apperrors.NewValidationError("page", "must be at least 1", page)
	}
	if b.loaded && b.pagination.Pages > 0 && page > b.pagination.Pages {
		b.mu.Unlock()
		return apperrors.NewValidationError("page", fmt.Sprintf("must be at most %d", b.pagination.Pages), page)
	}
	b.page = page
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// NextPage advances one page when possible.
func (b *Browser) NextPage(ctx context.Context) error {
	b.mu.Lock()
	page := b.page + 1
	b.mu.Unlock()
	return b.SetPage(ctx, page)
}

// PreviousPage goes back one page when possible.
func (b *Browser) PreviousPage(ctx context.Context) error {
	b.mu.Lock()
	page := b.page - 1
	b.mu.Unlock()
	return b.SetPage(ctx, page)
}

// ClearFilters resets every filter field to its default, resets to page 1 and
// re-queries.
func (b *Browser) ClearFilters(ctx context.Context) error {
	b.mu.Lock()
	b.filters = DefaultFilters()
	b.page = 1
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// ===== QUERY =====

// Refresh issues the list query for the current filter state. The response is
// committed only if no newer query has been issued in the meantime.
func (b *Browser) Refresh(ctx context.Context) error {
	b.mu.Lock()
	params := api.ListCoursesParams{
		Page:     b.page,
		Limit:    b.limit,
		Search:   b.filters.Search,
		Category: b.filters.Category,
		MinPrice: b.filters.MinPrice,
		MaxPrice: b.filters.MaxPrice,
		Sort:     b.filters.Sort,
	}
	// Validate before bumping seq: a rejected query issues no request, so it
	// must not invalidate a response that is still in flight.
	if err := b.validator.Validate(params); err != nil {
		b.lastErr = apperrors.UserMessage(err)
		b.mu.Unlock()
		return err
	}
	b.seq++
	seq := b.seq
	b.mu.Unlock()

	list, err := b.lister.ListCourses(ctx, params)

	b.mu.Lock()
	defer b.mu.Unlock()

	if seq != b.seq {
		// A newer query is in flight or already committed; this response is
		// stale and must not overwrite it.
		b.logger.Debug("discarding stale catalog response", "seq", seq, "latest", b.seq)
		return nil
	}

	if err != nil {
		// Keep the previous result set; only the banner changes.
		b.lastErr = apperrors.UserMessage(err)
		b.logger.LogError(err, "catalog query failed", "page", params.Page)
		return err
	}

	b.items = list.Items
	b.pagination = list.Pagination
	b.loaded = true
	b.lastErr = ""

	if b.publisher != nil {
		event := events.NewUIEvent(events.EventCatalogRefreshed, events.CatalogRefreshedEvent{
			Sequence: seq,
			Page:     list.Pagination.Page,
			Total:    list.Pagination.Total,
			Items:    len(list.Items),
		})
		if err := b.publisher.PublishUIEvent(ctx, event); err != nil {
			b.logger.Warn("failed to publish catalog event", "error", err)
		}
	}
	return nil
}

// ===== ACCESSORS =====

// Items returns the last committed result page, or nil when nothing has
// loaded yet (the empty state).
func (b *Browser) Items() []models.Course {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items
}

func (b *Browser) Pagination() models.Pagination {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pagination
}

func (b *Browser) Filters() Filters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters
}

func (b *Browser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// HasLoaded reports whether at least one query has been committed.
func (b *Browser) HasLoaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// CanPreviousPage reports whether the "previous" control is enabled.
func (b *Browser) CanPreviousPage() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page > 1
}

// CanNextPage reports whether the "next" control is enabled.
func (b *Browser) CanNextPage() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded && b.page < b.pagination.Pages
}

// Error returns the current banner text, empty when there is none.
func (b *Browser) Error() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// ClearError dismisses the banner.
func (b *Browser) ClearError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = ""
}
