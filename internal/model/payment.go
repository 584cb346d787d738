package model

import "time"

// Payment defaults applied when the request leaves a field empty.
const (
	DefaultCurrency      = "USD"
	DefaultPaymentMethod = "manual"
	DefaultPaymentStatus = "paid"
)

// Payment is money received from a student.
type Payment struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentDetail is a payment joined with the paying student's name.
type PaymentDetail struct {
	Payment
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// PaymentRequest is the payload for recording or replacing a payment.
type PaymentRequest struct {
	StudentID int     `json:"student_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0,lte=9999999999.99"`
	Currency  string  `json:"currency" binding:"max=3"`
	Method    string  `json:"method" binding:"max=50"`
	Status    string  `json:"status" binding:"max=50"`
	Reference string  `json:"reference" binding:"max=255"`
}
