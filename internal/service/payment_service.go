package service

import (
	"context"
	"strings"

	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/repository"
)

// PaymentService handles payments received from students.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

func (s *PaymentService) List(ctx context.Context) ([]model.PaymentDetail, error) {
	return s.paymentRepo.List(ctx)
}

func (s *PaymentService) ListByStudent(ctx context.Context, studentID int) ([]model.Payment, error) {
	return s.paymentRepo.ListByStudent(ctx, studentID)
}

// Create records a payment, filling currency, method and status defaults.
func (s *PaymentService) Create(ctx context.Context, req model.PaymentRequest) (*model.Payment, error) {
	payment, err := paymentFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) Update(ctx context.Context, id int, req model.PaymentRequest) (*model.Payment, error) {
	payment, err := paymentFromRequest(req)
	if err != nil {
		return nil, err
	}
	payment.ID = id
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id int) error {
	return s.paymentRepo.Delete(ctx, id)
}

func paymentFromRequest(req model.PaymentRequest) (*model.Payment, error) {
	if req.StudentID <= 0 || req.Amount <= 0 {
		return nil, invalid("student_id and a positive amount are required")
	}
	return &model.Payment{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Currency:  strings.ToUpper(orDefault(req.Currency, model.DefaultCurrency)),
		Method:    orDefault(req.Method, model.DefaultPaymentMethod),
		Status:    orDefault(req.Status, model.DefaultPaymentStatus),
		Reference: strings.TrimSpace(req.Reference),
	}, nil
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
