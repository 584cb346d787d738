package service

import (
	"context"
	"strings"

	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
	"github.com/stemsi/tutorly-backend/internal/validator"
)

// TutorService handles tutors and their weekly availability.
type TutorService struct {
	tutorRepo repository.TutorRepository
}

// NewTutorService creates a new TutorService.
func NewTutorService(tutorRepo repository.TutorRepository) *TutorService {
	return &TutorService{tutorRepo: tutorRepo}
}

func (s *TutorService) List(ctx context.Context) ([]model.Tutor, error) {
	return s.tutorRepo.List(ctx)
}

func (s *TutorService) Create(ctx context.Context, req model.TutorRequest) (*model.Tutor, error) {
	tutor, err := tutorFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.tutorRepo.Create(ctx, tutor); err != nil {
		return nil, err
	}
	return tutor, nil
}

func (s *TutorService) Update(ctx context.Context, id int, req model.TutorRequest) (*model.Tutor, error) {
	tutor, err := tutorFromRequest(req)
	if err != nil {
		return nil, err
	}
	tutor.ID = id
	if err := s.tutorRepo.Update(ctx, tutor); err != nil {
		return nil, err
	}
	return tutor, nil
}

func (s *TutorService) Delete(ctx context.Context, id int) error {
	return s.tutorRepo.Delete(ctx, id)
}

// ListAvailability returns every weekly window of an existing tutor.
func (s *TutorService) ListAvailability(ctx context.Context, tutorID int) ([]model.Availability, error) {
	if _, err := s.tutorRepo.GetByID(ctx, tutorID); err != nil {
		return nil, err
	}
	return s.tutorRepo.ListAvailability(ctx, tutorID)
}

// AddAvailability stores a weekly window; start must precede end.
func (s *TutorService) AddAvailability(ctx context.Context, tutorID int, req model.AvailabilityRequest) (*model.Availability, error) {
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return nil, invalid("day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	}
	start, okStart := validator.NormalizeClock(req.StartTime)
	end, okEnd := validator.NormalizeClock(req.EndTime)
	if !okStart || !okEnd {
		return nil, invalid("start_time and end_time must be HH:MM or HH:MM:SS")
	}
	if start >= end {
		return nil, invalid("start_time must be before end_time")
	}

	if _, err := s.tutorRepo.GetByID(ctx, tutorID); err != nil {
		return nil, err
	}

	slot := &model.Availability{
		TutorID:   tutorID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
	}
	if err := s.tutorRepo.CreateAvailability(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *TutorService) RemoveAvailability(ctx context.Context, tutorID, slotID int) error {
	return s.tutorRepo.DeleteAvailability(ctx, tutorID, slotID)
}

func tutorFromRequest(req model.TutorRequest) (*model.Tutor, error) {
	tutor := &model.Tutor{
		Name:    strings.TrimSpace(req.Name),
		Surname: strings.TrimSpace(req.Surname),
		Bio:     strings.TrimSpace(req.Bio),
		Rate:    req.Rate,
	}
	if tutor.Name == "" || tutor.Surname == "" {
		return nil, invalid("name and surname are required")
	}
	if tutor.Rate < 0 {
		return nil, invalid("rate must not be negative")
	}
	return tutor, nil
}
