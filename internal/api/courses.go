package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/models"
)

const (
	courseListCacheTTL   = 60 * time.Second
	courseDetailCacheTTL = 5 * time.Minute
)

// ListCoursesParams are the catalog query parameters. Zero values are omitted
// from the request; nil prices mean "no bound".
type ListCoursesParams struct {
	Page     int               `json:"page" validate:"omitempty,min=1"`
	Limit    int               `json:"limit" validate:"omitempty,min=1"`
	Search   string            `json:"search"`
	Category string            `json:"category"`
	MinPrice *float64          `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *float64          `json:"maxPrice" validate:"omitempty,gte=0"`
	Sort     models.SortOption `json:"sort" validate:"omitempty,sort_option"`
}

func (p ListCoursesParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	if p.Sort != "" {
		q.Set("sort", string(p.Sort))
	}
	return q
}

// ListCourses fetches one catalog page for the given filters.
func (c *Client) ListCourses(ctx context.Context, params ListCoursesParams) (*models.CourseList, error) {
	query := params.query()
	var list models.CourseList

	cacheKey := "courses:list:" + query.Encode()
	if err := c.cachedGet(ctx, cacheKey, courseListCacheTTL, "/courses", query, &list); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return &list, nil
}

// GetCourse fetches a full course including lessons, batches and tags.
func (c *Client) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	var course models.Course
	cacheKey := "courses:detail:" + courseID
	err := c.cachedGet(ctx, cacheKey, courseDetailCacheTTL, "/courses/"+courseID, nil, &course)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, err)
	}
	return &course, nil
}
