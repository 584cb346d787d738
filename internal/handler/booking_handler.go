package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
)

// BookingHandler handles lesson bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// ListByStudent godoc
// GET /bookings/student/:id
// Returns a student's bookings with tutor details, latest lesson first.
func (h *BookingHandler) ListByStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListByStudent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

// ListByTutor godoc
// GET /bookings/tutor/:id
func (h *BookingHandler) ListByTutor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListByTutor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

// Availability godoc
// GET /bookings/availability/:tutorId/:date
// Returns the booked slots and advertised windows of a tutor on a date.
func (h *BookingHandler) Availability(c *gin.Context) {
	tutorID, ok := paramID(c, "tutorId")
	if !ok {
		return
	}

	day, err := h.bookingService.Availability(c.Request.Context(), tutorID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, day)
}

// Create godoc
// POST /bookings
// Reserves a lesson. Fails with SLOT_BOOKED when the tutor is taken.
func (h *BookingHandler) Create(c *gin.Context) {
	var req model.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, booking)
}

// UpdateStatus godoc
// PUT /bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.bookingService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "message": "Booking status updated"})
}

// Delete godoc
// DELETE /bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}
