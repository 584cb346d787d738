package model

import "time"

// Review is feedback left by a student or tutor about the other party.
type Review struct {
	ID        int       `json:"id"`
	FromRole  string    `json:"from_role"`
	FromID    int       `json:"from_id"`
	ToRole    string    `json:"to_role"`
	ToID      int       `json:"to_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewFilter narrows a review listing. TutorID and StudentID match reviews
// where that party is either the author or the subject.
type ReviewFilter struct {
	FromRole  string `form:"from_role" binding:"omitempty,oneof=student tutor"`
	FromID    *int   `form:"from_id"`
	ToRole    string `form:"to_role" binding:"omitempty,oneof=student tutor"`
	ToID      *int   `form:"to_id"`
	TutorID   *int   `form:"tutor_id"`
	StudentID *int   `form:"student_id"`
}

// CreateReviewRequest is the payload for leaving a review.
type CreateReviewRequest struct {
	FromRole string `json:"from_role" binding:"required,oneof=student tutor"`
	FromID   int    `json:"from_id" binding:"required"`
	ToRole   string `json:"to_role" binding:"required,oneof=student tutor"`
	ToID     int    `json:"to_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// UpdateReviewRequest changes the rating and comment of a review.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
