package models

import "time"

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminStats is the aggregate counts block shown on the admin dashboard.
type AdminStats struct {
	TotalCourses         int     `json:"totalCourses"`
	TotalUsers           int     `json:"totalUsers"`
	StudentCount         int     `json:"studentCount"`
	InstructorCount      int     `json:"instructorCount"`
	AdminCount           int     `json:"adminCount"`
	TotalEnrollments     int     `json:"totalEnrollments"`
	CompletedEnrollments int     `json:"completedEnrollments"`
	ActiveEnrollments    int     `json:"activeEnrollments"`
	AvgProgress          float64 `json:"avgProgress"`
}
