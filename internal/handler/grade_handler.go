package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
)

// GradeHandler handles student grades.
type GradeHandler struct {
	gradeService *service.GradeService
}

func NewGradeHandler(gradeService *service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// List godoc
// GET /grades
func (h *GradeHandler) List(c *gin.Context) {
	grades, err := h.gradeService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, grades)
}

// ListByStudent godoc
// GET /grades/student/:id
func (h *GradeHandler) ListByStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	grades, err := h.gradeService.ListByStudent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, grades)
}

// Get godoc
// GET /grades/:id
func (h *GradeHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	grade, err := h.gradeService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, grade)
}

// Create godoc
// POST /grades
func (h *GradeHandler) Create(c *gin.Context) {
	var req model.GradeRequest
	if !bindJSON(c, &req) {
		return
	}

	grade, err := h.gradeService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, grade)
}

// Update godoc
// PUT /grades/:id
func (h *GradeHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.GradeRequest
	if !bindJSON(c, &req) {
		return
	}

	grade, err := h.gradeService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, grade)
}

// Delete godoc
// DELETE /grades/:id
func (h *GradeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.gradeService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}
