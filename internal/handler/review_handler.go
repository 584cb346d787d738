package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
	"github.com/stemsi/tutorly-backend/internal/validator"
)

// ReviewHandler handles reviews between students and tutors.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List godoc
// GET /reviews?from_role=&from_id=&to_role=&to_id=&tutor_id=&student_id=
// tutor_id and student_id match reviews written by or about that party.
func (h *ReviewHandler) List(c *gin.Context) {
	var filter model.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
		return
	}

	reviews, err := h.reviewService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviews)
}

// Create godoc
// POST /reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req model.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, review)
}

// Update godoc
// PUT /reviews/:id
// Changes the rating and comment.
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// Delete godoc
// DELETE /reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}
