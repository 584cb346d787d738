package service

import (
	"context"
	"strings"

	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
)

// ReviewService handles reviews exchanged between students and tutors.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

func (s *ReviewService) List(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error) {
	return s.reviewRepo.List(ctx, filter)
}

func (s *ReviewService) Create(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error) {
	if !isReviewParty(req.FromRole) || !isReviewParty(req.ToRole) {
		return nil, invalid("from_role and to_role must be student or tutor")
	}
	if req.FromID <= 0 || req.ToID <= 0 {
		return nil, invalid("from_id and to_id are required")
	}
	if err := checkRating(req.Rating); err != nil {
		return nil, err
	}

	review := &model.Review{
		FromRole: req.FromRole,
		FromID:   req.FromID,
		ToRole:   req.ToRole,
		ToID:     req.ToID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Update changes the rating and comment of a review and returns it.
func (s *ReviewService) Update(ctx context.Context, id int, req model.UpdateReviewRequest) (*model.Review, error) {
	if err := checkRating(req.Rating); err != nil {
		return nil, err
	}
	review := &model.Review{ID: id, Rating: req.Rating, Comment: strings.TrimSpace(req.Comment)}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int) error {
	return s.reviewRepo.Delete(ctx, id)
}

func isReviewParty(role string) bool {
	return role == model.RoleStudent || role == model.RoleTutor
}

func checkRating(rating int) error {
	if rating < 1 || rating > 5 {
		return invalid("rating must be between 1 and 5")
	}
	return nil
}
