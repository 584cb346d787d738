package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
)

// TutorHandler handles tutors and their weekly availability.
type TutorHandler struct {
	tutorService *service.TutorService
}

func NewTutorHandler(tutorService *service.TutorService) *TutorHandler {
	return &TutorHandler{tutorService: tutorService}
}

// List godoc
// GET /tutors
func (h *TutorHandler) List(c *gin.Context) {
	tutors, err := h.tutorService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tutors)
}

// Create godoc
// POST /tutors
func (h *TutorHandler) Create(c *gin.Context) {
	var req model.TutorRequest
	if !bindJSON(c, &req) {
		return
	}

	tutor, err := h.tutorService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tutor)
}

// Update godoc
// PUT /tutors/:id
func (h *TutorHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.TutorRequest
	if !bindJSON(c, &req) {
		return
	}

	tutor, err := h.tutorService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tutor)
}

// Delete godoc
// DELETE /tutors/:id
func (h *TutorHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.tutorService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}

// ListAvailability godoc
// GET /tutors/:id/availability
// Returns the tutor's recurring weekly windows.
func (h *TutorHandler) ListAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	slots, err := h.tutorService.ListAvailability(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slots)
}

// AddAvailability godoc
// POST /tutors/:id/availability
func (h *TutorHandler) AddAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	slot, err := h.tutorService.AddAvailability(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, slot)
}

// RemoveAvailability godoc
// DELETE /tutors/:id/availability/:slotId
func (h *TutorHandler) RemoveAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	slotID, ok := paramID(c, "slotId")
	if !ok {
		return
	}

	if err := h.tutorService.RemoveAvailability(c.Request.Context(), id, slotID); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}
