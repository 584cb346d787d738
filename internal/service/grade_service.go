package service

import (
	"context"
	"strings"

	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
)

// GradeService handles student grades.
type GradeService struct {
	gradeRepo repository.GradeRepository
}

func NewGradeService(gradeRepo repository.GradeRepository) *GradeService {
	return &GradeService{gradeRepo: gradeRepo}
}

func (s *GradeService) List(ctx context.Context) ([]model.GradeDetail, error) {
	return s.gradeRepo.List(ctx)
}

func (s *GradeService) ListByStudent(ctx context.Context, studentID int) ([]model.GradeDetail, error) {
	return s.gradeRepo.ListByStudent(ctx, studentID)
}

func (s *GradeService) GetByID(ctx context.Context, id int) (*model.Grade, error) {
	return s.gradeRepo.GetByID(ctx, id)
}

func (s *GradeService) Create(ctx context.Context, req model.GradeRequest) (*model.Grade, error) {
	grade, err := gradeFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *GradeService) Update(ctx context.Context, id int, req model.GradeRequest) (*model.Grade, error) {
	grade, err := gradeFromRequest(req)
	if err != nil {
		return nil, err
	}
	grade.ID = id
	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *GradeService) Delete(ctx context.Context, id int) error {
	return s.gradeRepo.Delete(ctx, id)
}

func gradeFromRequest(req model.GradeRequest) (*model.Grade, error) {
	grade := &model.Grade{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		GradeValue: model.GradeValue(strings.TrimSpace(string(req.GradeValue))),
		Comments:   strings.TrimSpace(req.Comments),
	}
	if grade.StudentID <= 0 || grade.GradeValue == "" {
		return nil, invalid("student_id and grade_value are required")
	}
	if grade.CourseID != nil && *grade.CourseID <= 0 {
		grade.CourseID = nil
	}
	return grade, nil
}
