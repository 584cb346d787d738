package model

import "time"

// Course is a subject that tutors can be linked to.
type Course struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseSummary is a course as listed for a tutor.
type CourseSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CourseRequest is the payload for creating or replacing a course.
type CourseRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"max=100"`
}
