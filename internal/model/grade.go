package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// GradeValue is a free-form grade such as "A-" or "87". Clients may send it as
// a JSON string or number; it is always stored and returned as a string.
type GradeValue string

// UnmarshalJSON accepts both string and numeric encodings.
func (g *GradeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = GradeValue(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*g = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*g = GradeValue(n.String())
	return nil
}

// Grade is an assessment recorded for a student, optionally tied to a course.
type Grade struct {
	ID         int        `json:"id"`
	StudentID  int        `json:"student_id"`
	CourseID   *int       `json:"course_id"`
	GradeValue GradeValue `json:"grade_value"`
	Comments   string     `json:"comments"`
	CreatedAt  time.Time  `json:"created_at"`
}

// GradeDetail is a grade joined with student and course names.
type GradeDetail struct {
	Grade
	StudentFirstName *string `json:"student_first_name,omitempty"`
	StudentLastName  *string `json:"student_last_name,omitempty"`
	CourseName       *string `json:"course_name"`
}

// GradeRequest is the payload for recording or replacing a grade.
type GradeRequest struct {
	StudentID  int        `json:"student_id" binding:"required"`
	CourseID   *int       `json:"course_id"`
	GradeValue GradeValue `json:"grade_value" binding:"required,max=20"`
	Comments   string     `json:"comments"`
}
