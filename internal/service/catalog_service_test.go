package service

import (
	"context"
	"testing"

	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
	"github.com/stemsi/tutorly-backend/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestStudentService(t *testing.T) {
	ctx := context.Background()
	repo := repotest.NewStudents()
	svc := NewStudentService(repo)

	created, err := svc.Create(ctx, model.StudentRequest{FirstName: " Ana ", LastName: "Ruiz", Email: "ana@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.FirstName)
	assert.NotZero(t, created.ID)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, model.StudentRequest{FirstName: "B", LastName: "C", Email: "ana@x.com"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("blank names", func(t *testing.T) {
		_, err := svc.Create(ctx, model.StudentRequest{FirstName: "  ", LastName: "C", Email: "z@x.com"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("update returns stored row", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, model.StudentRequest{FirstName: "Ana", LastName: "Ortiz", Email: "ana@x.com"})
		require.NoError(t, err)
		assert.Equal(t, "Ortiz", updated.LastName)
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := svc.Update(ctx, 404, model.StudentRequest{FirstName: "A", LastName: "B", Email: "q@x.com"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete referenced", func(t *testing.T) {
		repo.Referenced[created.ID] = true
		assert.ErrorIs(t, svc.Delete(ctx, created.ID), repository.ErrInUse)
		delete(repo.Referenced, created.ID)
	})

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTutorService_Requests(t *testing.T) {
	ctx := context.Background()
	svc := NewTutorService(repotest.NewTutors())

	tests := []struct {
		name string
		req  model.TutorRequest
	}{
		{"missing surname", model.TutorRequest{Name: "Maria"}},
		{"negative rate", model.TutorRequest{Name: "Maria", Surname: "Lopez", Rate: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := svc.Update(ctx, 77, model.TutorRequest{Name: "A", Surname: "B"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTutorService_Availability(t *testing.T) {
	ctx := context.Background()
	svc := NewTutorService(repotest.NewTutors())

	tutor, err := svc.Create(ctx, model.TutorRequest{Name: "Maria", Surname: "Lopez", Rate: 40})
	require.NoError(t, err)

	slot, err := svc.AddAvailability(ctx, tutor.ID, model.AvailabilityRequest{
		DayOfWeek: intPtr(0), StartTime: "09:00", EndTime: "12:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", slot.StartTime)
	assert.Equal(t, "12:30:00", slot.EndTime)
	assert.Equal(t, 0, slot.DayOfWeek, "Sunday is a valid day")

	tests := []struct {
		name string
		req  model.AvailabilityRequest
	}{
		{"day out of range", model.AvailabilityRequest{DayOfWeek: intPtr(7), StartTime: "09:00", EndTime: "10:00"}},
		{"missing day", model.AvailabilityRequest{StartTime: "09:00", EndTime: "10:00"}},
		{"start after end", model.AvailabilityRequest{DayOfWeek: intPtr(1), StartTime: "11:00", EndTime: "10:00"}},
		{"empty window", model.AvailabilityRequest{DayOfWeek: intPtr(1), StartTime: "10:00", EndTime: "10:00:00"}},
		{"bad clock", model.AvailabilityRequest{DayOfWeek: intPtr(1), StartTime: "9am", EndTime: "10:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddAvailability(ctx, tutor.ID, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err = svc.AddAvailability(ctx, 999, model.AvailabilityRequest{DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := svc.ListAvailability(ctx, tutor.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListAvailability(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.RemoveAvailability(ctx, tutor.ID+1, slot.ID), repository.ErrNotFound, "slot belongs to another tutor")
	require.NoError(t, svc.RemoveAvailability(ctx, tutor.ID, slot.ID))
}

func TestCourseService(t *testing.T) {
	ctx := context.Background()
	tutors := repotest.NewTutors()
	svc := NewCourseService(repotest.NewCourses(tutors))

	tutor := &model.Tutor{Name: "Maria", Surname: "Lopez"}
	require.NoError(t, tutors.Create(ctx, tutor))

	algebra, err := svc.Create(ctx, model.CourseRequest{Name: "  Algebra ", Category: "Math"})
	require.NoError(t, err)
	assert.Equal(t, "Algebra", algebra.Name)

	t.Run("name required", func(t *testing.T) {
		_, err := svc.Create(ctx, model.CourseRequest{Name: "   "})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.Create(ctx, model.CourseRequest{Name: "Algebra"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("assign", func(t *testing.T) {
		require.NoError(t, svc.Assign(ctx, tutor.ID, algebra.ID))
		assert.ErrorIs(t, svc.Assign(ctx, tutor.ID, algebra.ID), repository.ErrDuplicate)

		err := svc.Assign(ctx, tutor.ID, 999)
		var ref *repository.ReferenceError
		require.ErrorAs(t, err, &ref)
		assert.Equal(t, "course_id", ref.Field)
		assert.ErrorIs(t, err, repository.ErrMissingReference)
	})

	t.Run("lookups", func(t *testing.T) {
		teaching, err := svc.TutorsForCourse(ctx, algebra.ID)
		require.NoError(t, err)
		require.Len(t, teaching, 1)
		assert.Equal(t, "Maria", teaching[0].Name)

		courses, err := svc.CoursesForTutor(ctx, tutor.ID)
		require.NoError(t, err)
		assert.Equal(t, []model.CourseSummary{{ID: algebra.ID, Name: "Algebra", Category: "Math"}}, courses)

		_, err = svc.TutorsForCourse(ctx, 999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("unassign", func(t *testing.T) {
		require.NoError(t, svc.Unassign(ctx, tutor.ID, algebra.ID))
		assert.ErrorIs(t, svc.Unassign(ctx, tutor.ID, algebra.ID), repository.ErrNotFound)
	})

	t.Run("update and delete", func(t *testing.T) {
		updated, err := svc.Update(ctx, algebra.ID, model.CourseRequest{Name: "Algebra I"})
		require.NoError(t, err)
		assert.Equal(t, "Algebra I", updated.Name)

		require.NoError(t, svc.Delete(ctx, algebra.ID))
		assert.ErrorIs(t, svc.Delete(ctx, algebra.ID), repository.ErrNotFound)
	})
}
