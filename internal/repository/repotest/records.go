package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
)

// Bookings is an in-memory repository.BookingRepository. The slot check and
// insert in Create happen under one lock.
type Bookings struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Booking
	tutors *Tutors
	// Calls counts every method invocation.
	Calls int
}

// NewBookings creates a Bookings store joining tutor details from tutors.
func NewBookings(tutors *Tutors) *Bookings {
	return &Bookings{rows: map[int]model.Booking{}, tutors: tutors}
}

func (r *Bookings) ListByStudent(ctx context.Context, studentID int) ([]model.BookingDetail, error) {
	r.mu.Lock()
	r.Calls++
	var list []model.Booking
	for _, b := range r.rows {
		if b.StudentID == studentID {
			list = append(list, b)
		}
	}
	r.mu.Unlock()

	sortNewestLesson(list)
	out := []model.BookingDetail{}
	for _, b := range list {
		out = append(out, r.detail(ctx, b))
	}
	return out, nil
}

func (r *Bookings) ListByTutor(_ context.Context, tutorID int) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	out := []model.Booking{}
	for _, b := range r.rows {
		if b.TutorID == tutorID {
			out = append(out, b)
		}
	}
	sortNewestLesson(out)
	return out, nil
}

func (r *Bookings) GetDetail(ctx context.Context, id int) (*model.BookingDetail, error) {
	r.mu.Lock()
	r.Calls++
	b, ok := r.rows[id]
	r.mu.Unlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	d := r.detail(ctx, b)
	return &d, nil
}

func (r *Bookings) SlotTaken(_ context.Context, tutorID int, date, clock string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	return r.taken(tutorID, date, clock, 0), nil
}

func (r *Bookings) BookedSlots(_ context.Context, tutorID int, date string) ([]model.BookedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	out := []model.BookedSlot{}
	for _, b := range r.rows {
		if b.TutorID == tutorID && b.LessonDate == date && b.Status != model.BookingCancelled {
			out = append(out, model.BookedSlot{LessonTime: b.LessonTime, Duration: b.Duration})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessonTime < out[j].LessonTime })
	return out, nil
}

func (r *Bookings) Create(_ context.Context, b *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if r.taken(b.TutorID, b.LessonDate, b.LessonTime, 0) {
		return repository.ErrSlotTaken
	}
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	r.rows[b.ID] = *b
	return nil
}

func (r *Bookings) UpdateStatus(_ context.Context, id int, status model.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	b, ok := r.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	if status != model.BookingCancelled && r.taken(b.TutorID, b.LessonDate, b.LessonTime, id) {
		return repository.ErrSlotTaken
	}
	b.Status = status
	r.rows[id] = b
	return nil
}

func (r *Bookings) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// Get returns the stored booking, for assertions.
func (r *Bookings) Get(id int) (model.Booking, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	return b, ok
}

func (r *Bookings) taken(tutorID int, date, clock string, except int) bool {
	for id, b := range r.rows {
		if id != except && b.TutorID == tutorID && b.LessonDate == date &&
			b.LessonTime == clock && b.Status != model.BookingCancelled {
			return true
		}
	}
	return false
}

func (r *Bookings) detail(ctx context.Context, b model.Booking) model.BookingDetail {
	d := model.BookingDetail{Booking: b}
	if r.tutors != nil {
		if t, err := r.tutors.GetByID(ctx, b.TutorID); err == nil {
			d.TutorName, d.TutorSurname, d.Rate = t.Name, t.Surname, t.Rate
		}
	}
	return d
}

func sortNewestLesson(list []model.Booking) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].LessonDate != list[j].LessonDate {
			return list[i].LessonDate > list[j].LessonDate
		}
		return list[i].LessonTime > list[j].LessonTime
	})
}

// Grades is an in-memory repository.GradeRepository.
type Grades struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Grade
}

func NewGrades() *Grades {
	return &Grades{rows: map[int]model.Grade{}}
}

func (r *Grades) List(_ context.Context) ([]model.GradeDetail, error) {
	return r.filter(func(model.Grade) bool { return true }), nil
}

func (r *Grades) ListByStudent(_ context.Context, studentID int) ([]model.GradeDetail, error) {
	return r.filter(func(g model.Grade) bool { return g.StudentID == studentID }), nil
}

func (r *Grades) GetByID(_ context.Context, id int) (*model.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (r *Grades) Create(_ context.Context, g *model.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	g.ID = r.nextID
	g.CreatedAt = time.Now()
	r.rows[g.ID] = *g
	return nil
}

func (r *Grades) Update(_ context.Context, g *model.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.rows[g.ID]
	if !ok {
		return repository.ErrNotFound
	}
	g.CreatedAt = old.CreatedAt
	r.rows[g.ID] = *g
	return nil
}

func (r *Grades) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *Grades) filter(keep func(model.Grade) bool) []model.GradeDetail {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.GradeDetail{}
	for _, g := range r.rows {
		if keep(g) {
			out = append(out, model.GradeDetail{Grade: g})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Payments is an in-memory repository.PaymentRepository.
type Payments struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Payment
}

func NewPayments() *Payments {
	return &Payments{rows: map[int]model.Payment{}}
}

func (r *Payments) List(_ context.Context) ([]model.PaymentDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.PaymentDetail{}
	for _, p := range r.rows {
		out = append(out, model.PaymentDetail{Payment: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Payments) ListByStudent(_ context.Context, studentID int) ([]model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Payment{}
	for _, p := range r.rows {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Payments) Create(_ context.Context, p *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	r.rows[p.ID] = *p
	return nil
}

func (r *Payments) Update(_ context.Context, p *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.rows[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	r.rows[p.ID] = *p
	return nil
}

func (r *Payments) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// Reviews is an in-memory repository.ReviewRepository.
type Reviews struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Review
}

func NewReviews() *Reviews {
	return &Reviews{rows: map[int]model.Review{}}
}

func (r *Reviews) List(_ context.Context, f model.ReviewFilter) ([]model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Review{}
	for _, rv := range r.rows {
		if matchesReview(rv, f) {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Reviews) GetByID(_ context.Context, id int) (*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rv, nil
}

func (r *Reviews) Create(_ context.Context, rv *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rv.ID = r.nextID
	rv.CreatedAt = time.Now()
	r.rows[rv.ID] = *rv
	return nil
}

func (r *Reviews) Update(_ context.Context, rv *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[rv.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Rating, stored.Comment = rv.Rating, rv.Comment
	r.rows[rv.ID] = stored
	*rv = stored
	return nil
}

func (r *Reviews) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func matchesReview(rv model.Review, f model.ReviewFilter) bool {
	if f.FromRole != "" && rv.FromRole != f.FromRole {
		return false
	}
	if f.FromID != nil && rv.FromID != *f.FromID {
		return false
	}
	if f.ToRole != "" && rv.ToRole != f.ToRole {
		return false
	}
	if f.ToID != nil && rv.ToID != *f.ToID {
		return false
	}
	if f.TutorID != nil && !involves(rv, model.RoleTutor, *f.TutorID) {
		return false
	}
	if f.StudentID != nil && !involves(rv, model.RoleStudent, *f.StudentID) {
		return false
	}
	return true
}

func involves(rv model.Review, role string, id int) bool {
	return (rv.FromRole == role && rv.FromID == id) || (rv.ToRole == role && rv.ToID == id)
}
