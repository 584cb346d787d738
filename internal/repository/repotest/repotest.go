// Package repotest provides in-memory repository implementations for tests.
// They mirror the error contract of the PostgreSQL repositories.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
)

// Accounts is an in-memory repository.AccountRepository.
type Accounts struct {
	mu     sync.Mutex
	nextID int
	byKey  map[string]model.Account
	// Err, when set, is returned by every call.
	Err error
}

func NewAccounts() *Accounts {
	return &Accounts{byKey: map[string]model.Account{}}
}

func (r *Accounts) Create(_ context.Context, a *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	key := strings.ToLower(a.Email)
	if _, ok := r.byKey[key]; ok {
		return repository.ErrDuplicate
	}
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.byKey[key] = *a
	return nil
}

func (r *Accounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	a, ok := r.byKey[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

// Revocations is an in-memory repository.RevocationStore.
type Revocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	Err     error
}

func NewRevocations() *Revocations {
	return &Revocations{revoked: map[string]time.Duration{}}
}

func (r *Revocations) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if ttl <= 0 {
		return nil
	}
	r.revoked[jti] = ttl
	return nil
}

func (r *Revocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	_, ok := r.revoked[jti]
	return ok, nil
}

// Count returns how many token ids are revoked.
func (r *Revocations) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.revoked)
}

// Students is an in-memory repository.StudentRepository.
type Students struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Student
	// Referenced marks student ids that other records point at.
	Referenced map[int]bool
}

func NewStudents() *Students {
	return &Students{rows: map[int]model.Student{}, Referenced: map[int]bool{}}
}

func (r *Students) List(_ context.Context) ([]model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Student{}
	for _, s := range r.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Students) GetByID(_ context.Context, id int) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *Students) Create(_ context.Context, s *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(s.Email, 0) {
		return repository.ErrDuplicate
	}
	r.nextID++
	s.ID = r.nextID
	r.rows[s.ID] = *s
	return nil
}

func (r *Students) Update(_ context.Context, s *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[s.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(s.Email, s.ID) {
		return repository.ErrDuplicate
	}
	r.rows[s.ID] = *s
	return nil
}

func (r *Students) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if r.Referenced[id] {
		return repository.ErrInUse
	}
	delete(r.rows, id)
	return nil
}

func (r *Students) emailTaken(email string, except int) bool {
	for id, s := range r.rows {
		if id != except && s.Email == email {
			return true
		}
	}
	return false
}

// Tutors is an in-memory repository.TutorRepository.
type Tutors struct {
	mu         sync.Mutex
	nextID     int
	nextSlotID int
	rows       map[int]model.Tutor
	slots      map[int]model.Availability
}

func NewTutors() *Tutors {
	return &Tutors{rows: map[int]model.Tutor{}, slots: map[int]model.Availability{}}
}

func (r *Tutors) List(_ context.Context) ([]model.Tutor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Tutor{}
	for _, t := range r.rows {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Tutors) GetByID(_ context.Context, id int) (*model.Tutor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *Tutors) Create(_ context.Context, t *model.Tutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	r.rows[t.ID] = *t
	return nil
}

func (r *Tutors) Update(_ context.Context, t *model.Tutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[t.ID]; !ok {
		return repository.ErrNotFound
	}
	r.rows[t.ID] = *t
	return nil
}

func (r *Tutors) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *Tutors) ListAvailability(_ context.Context, tutorID int) ([]model.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Availability{}
	for _, a := range r.slots {
		if a.TutorID == tutorID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *Tutors) WindowsForDay(ctx context.Context, tutorID, dayOfWeek int) ([]model.TimeWindow, error) {
	all, _ := r.ListAvailability(ctx, tutorID)
	out := []model.TimeWindow{}
	for _, a := range all {
		if a.DayOfWeek == dayOfWeek {
			out = append(out, model.TimeWindow{StartTime: a.StartTime, EndTime: a.EndTime})
		}
	}
	return out, nil
}

func (r *Tutors) CreateAvailability(_ context.Context, a *model.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[a.TutorID]; !ok {
		return &repository.ReferenceError{Field: "tutor_id"}
	}
	r.nextSlotID++
	a.ID = r.nextSlotID
	r.slots[a.ID] = *a
	return nil
}

func (r *Tutors) DeleteAvailability(_ context.Context, tutorID, slotID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.slots[slotID]
	if !ok || a.TutorID != tutorID {
		return repository.ErrNotFound
	}
	delete(r.slots, slotID)
	return nil
}

// Courses is an in-memory repository.CourseRepository.
type Courses struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Course
	links  map[[2]int]bool
	tutors *Tutors
}

// NewCourses creates a Courses store resolving linked tutors through tutors.
func NewCourses(tutors *Tutors) *Courses {
	return &Courses{rows: map[int]model.Course{}, links: map[[2]int]bool{}, tutors: tutors}
}

func (r *Courses) List(_ context.Context) ([]model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Course{}
	for _, c := range r.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Courses) GetByID(_ context.Context, id int) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *Courses) Create(_ context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(c.Name, 0) {
		return repository.ErrDuplicate
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.rows[c.ID] = *c
	return nil
}

func (r *Courses) Update(_ context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.rows[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return repository.ErrDuplicate
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = time.Now()
	r.rows[c.ID] = *c
	return nil
}

func (r *Courses) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	for k := range r.links {
		if k[1] == id {
			delete(r.links, k)
		}
	}
	return nil
}

func (r *Courses) ListTutors(ctx context.Context, courseID int) ([]model.Tutor, error) {
	r.mu.Lock()
	var ids []int
	for k := range r.links {
		if k[1] == courseID {
			ids = append(ids, k[0])
		}
	}
	r.mu.Unlock()

	sort.Ints(ids)
	out := []model.Tutor{}
	for _, id := range ids {
		if t, err := r.tutors.GetByID(ctx, id); err == nil {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *Courses) ListForTutor(_ context.Context, tutorID int) ([]model.CourseSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.CourseSummary{}
	for k := range r.links {
		if k[0] != tutorID {
			continue
		}
		c := r.rows[k[1]]
		out = append(out, model.CourseSummary{ID: c.ID, Name: c.Name, Description: c.Description, Category: c.Category})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Courses) Assign(ctx context.Context, tutorID, courseID int) error {
	if _, err := r.tutors.GetByID(ctx, tutorID); err != nil {
		return &repository.ReferenceError{Field: "tutor_id"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[courseID]; !ok {
		return &repository.ReferenceError{Field: "course_id"}
	}
	key := [2]int{tutorID, courseID}
	if r.links[key] {
		return repository.ErrDuplicate
	}
	r.links[key] = true
	return nil
}

func (r *Courses) Unassign(_ context.Context, tutorID, courseID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int{tutorID, courseID}
	if !r.links[key] {
		return repository.ErrNotFound
	}
	delete(r.links, key)
	return nil
}

func (r *Courses) nameTaken(name string, except int) bool {
	for id, c := range r.rows {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}
