package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stemsi/tutorly-backend/internal/config"
	"github.com/stemsi/tutorly-backend/internal/database"
	"github.com/stemsi/tutorly-backend/internal/logger"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
	"github.com/stemsi/tutorly-backend/internal/service"
)

type seedTutor struct {
	model.TutorRequest
	courses []string
	// weekdays the tutor teaches, 0 = Sunday
	days       []int
	start, end string
}

var courses = []model.CourseRequest{
	{Name: "Algebra I", Description: "Linear equations, inequalities and functions", Category: "Mathematics"},
	{Name: "Calculus", Description: "Limits, derivatives and integrals", Category: "Mathematics"},
	{Name: "Physics", Description: "Mechanics, waves and electricity", Category: "Science"},
	{Name: "Chemistry", Description: "Atoms, bonding and reactions", Category: "Science"},
	{Name: "English Writing", Description: "Essay structure and academic style", Category: "Languages"},
	{Name: "Spanish", Description: "Conversation and grammar for beginners", Category: "Languages"},
	{Name: "Intro to Programming", Description: "Programming fundamentals in Python", Category: "Computer Science"},
}

var tutors = []seedTutor{
	{
		TutorRequest: model.TutorRequest{Name: "Maria", Surname: "Lopez", Bio: "Former high school maths teacher.", Rate: 35},
		courses:      []string{"Algebra I", "Calculus"},
		days:         []int{1, 3, 5}, start: "15:00", end: "19:00",
	},
	{
		TutorRequest: model.TutorRequest{Name: "James", Surname: "Okafor", Bio: "Physics PhD student.", Rate: 40},
		courses:      []string{"Physics", "Calculus"},
		days:         []int{2, 4}, start: "17:00", end: "21:00",
	},
	{
		TutorRequest: model.TutorRequest{Name: "Lena", Surname: "Fischer", Bio: "Chemist and lab instructor.", Rate: 38},
		courses:      []string{"Chemistry"},
		days:         []int{1, 2, 3}, start: "09:00", end: "12:00",
	},
	{
		TutorRequest: model.TutorRequest{Name: "Carlos", Surname: "Ruiz", Bio: "Native speaker, certified language teacher.", Rate: 30},
		courses:      []string{"Spanish", "English Writing"},
		days:         []int{6, 0}, start: "10:00", end: "16:00",
	},
	{
		TutorRequest: model.TutorRequest{Name: "Priya", Surname: "Nair", Bio: "Software engineer who enjoys teaching beginners.", Rate: 45},
		courses:      []string{"Intro to Programming"},
		days:         []int{3, 6}, start: "18:00", end: "20:30",
	},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	tutorRepo := repository.NewTutorRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	tutorService := service.NewTutorService(tutorRepo)
	courseService := service.NewCourseService(courseRepo)

	fmt.Println("=== Seeding Catalog ===")

	courseIDs, err := seedCourses(ctx, courseService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed courses")
	}
	fmt.Printf("Courses ready: %d\n", len(courseIDs))

	for _, st := range tutors {
		tutor, err := tutorService.Create(ctx, st.TutorRequest)
		if err != nil {
			fmt.Printf("Error creating tutor %s %s: %v\n", st.Name, st.Surname, err)
			continue
		}

		for _, name := range st.courses {
			err := courseService.Assign(ctx, tutor.ID, courseIDs[name])
			if err != nil && !errors.Is(err, repository.ErrDuplicate) {
				fmt.Printf("Error linking %s to %s: %v\n", tutor.Name, name, err)
			}
		}

		for _, day := range st.days {
			day := day
			req := model.AvailabilityRequest{DayOfWeek: &day, StartTime: st.start, EndTime: st.end}
			if _, err := tutorService.AddAvailability(ctx, tutor.ID, req); err != nil {
				fmt.Printf("Error adding availability for %s: %v\n", tutor.Name, err)
			}
		}
		fmt.Printf("Created tutor %s %s (ID %d)\n", tutor.Name, tutor.Surname, tutor.ID)
	}

	fmt.Println("\nSeed completed!")
}

// seedCourses creates missing courses and returns every seeded course id by name.
func seedCourses(ctx context.Context, courseService *service.CourseService) (map[string]int, error) {
	existing, err := courseService.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int, len(courses))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	for _, req := range courses {
		if _, ok := ids[req.Name]; ok {
			continue
		}
		course, err := courseService.Create(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("create course %q: %w", req.Name, err)
		}
		ids[course.Name] = course.ID
	}
	return ids, nil
}
