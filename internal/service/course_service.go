package service

import (
	"context"
	"strings"

	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
)

// CourseService handles the course catalogue and tutor assignments.
type CourseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx)
}

func (s *CourseService) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// Create stores a course. Names are trimmed and must be unique.
func (s *CourseService) Create(ctx context.Context, req model.CourseRequest) (*model.Course, error) {
	course, err := courseFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id int, req model.CourseRequest) (*model.Course, error) {
	course, err := courseFromRequest(req)
	if err != nil {
		return nil, err
	}
	course.ID = id
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, id int) error {
	return s.courseRepo.Delete(ctx, id)
}

// TutorsForCourse lists the tutors teaching an existing course.
func (s *CourseService) TutorsForCourse(ctx context.Context, courseID int) ([]model.Tutor, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courseRepo.ListTutors(ctx, courseID)
}

func (s *CourseService) CoursesForTutor(ctx context.Context, tutorID int) ([]model.CourseSummary, error) {
	return s.courseRepo.ListForTutor(ctx, tutorID)
}

func (s *CourseService) Assign(ctx context.Context, tutorID, courseID int) error {
	return s.courseRepo.Assign(ctx, tutorID, courseID)
}

func (s *CourseService) Unassign(ctx context.Context, tutorID, courseID int) error {
	return s.courseRepo.Unassign(ctx, tutorID, courseID)
}

func courseFromRequest(req model.CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
	}
	if course.Name == "" {
		return nil, invalid("name is required")
	}
	return course, nil
}
