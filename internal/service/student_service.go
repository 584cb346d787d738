package service

import (
	"context"
	"strings"

	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
)

// StudentService handles student records.
type StudentService struct {
	studentRepo repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.studentRepo.List(ctx)
}

func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// Create trims and stores a new student. Emails are unique.
func (s *StudentService) Create(ctx context.Context, req model.StudentRequest) (*model.Student, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Update replaces a student's fields and returns the stored row.
func (s *StudentService) Update(ctx context.Context, id int, req model.StudentRequest) (*model.Student, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	student.ID = id
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.studentRepo.Delete(ctx, id)
}

func studentFromRequest(req model.StudentRequest) (*model.Student, error) {
	student := &model.Student{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
	}
	if student.FirstName == "" || student.LastName == "" || student.Email == "" {
		return nil, invalid("first_name, last_name and email are required")
	}
	return student, nil
}
