package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
)

// PaymentHandler handles payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List godoc
// GET /payments
// Returns every payment with the paying student's name.
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.paymentService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}

// ListByStudent godoc
// GET /payments/student/:id
func (h *PaymentHandler) ListByStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByStudent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}

// Create godoc
// POST /payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req model.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payment)
}

// Update godoc
// PUT /payments/:id
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}

// Delete godoc
// DELETE /payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}
