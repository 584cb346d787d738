package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
)

// StudentHandler handles student records.
type StudentHandler struct {
	studentService *service.StudentService
}

func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// List godoc
// GET /students
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// Get godoc
// GET /students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// Create godoc
// POST /students
func (h *StudentHandler) Create(c *gin.Context) {
	var req model.StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, student)
}

// Update godoc
// PUT /students/:id
// Replaces a student and returns the stored row.
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// Delete godoc
// DELETE /students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}
