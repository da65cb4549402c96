package models

import "time"

// SortOption controls catalog result ordering. The server interprets the value;
// the client only validates it.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
)

type Lesson struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl,omitempty"`
	// Order is unique within a course and defines the lesson sequence.
	Order int `json:"order"`
}

type Batch struct {
	ID          string    `json:"_id"`
	CourseID    string    `json:"courseId"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Schedule    string    `json:"schedule,omitempty"`
	MaxStudents int       `json:"maxStudents,omitempty"`
}

type Course struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Instructor  string    `json:"instructor"`
	Tags        []string  `json:"tags"`
	Lessons     []Lesson  `json:"lessons"`
	Batches     []Batch   `json:"batches"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LessonByID returns the index of the lesson with the given id, or -1.
func (c *Course) LessonIndex(lessonID string) int {
	for i, l := range c.Lessons {
		if l.ID == lessonID {
			return i
		}
	}
	return -1
}

// Pagination describes one page of a server-side list result.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// CourseList is the list-courses response body.
type CourseList struct {
	Items      []Course   `json:"data"`
	Pagination Pagination `json:"pagination"`
}
