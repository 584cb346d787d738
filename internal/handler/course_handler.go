package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/model"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
)

// CourseHandler handles the course catalogue and tutor assignments.
type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// List godoc
// GET /courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, courses)
}

// Get godoc
// GET /courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// ListTutors godoc
// GET /courses/:id/tutors
// Returns the tutors teaching a course.
func (h *CourseHandler) ListTutors(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	tutors, err := h.courseService.TutorsForCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tutors)
}

// ListForTutor godoc
// GET /courses/tutor/:tutorId
// Returns the courses a tutor teaches.
func (h *CourseHandler) ListForTutor(c *gin.Context) {
	tutorID, ok := paramID(c, "tutorId")
	if !ok {
		return
	}

	courses, err := h.courseService.CoursesForTutor(c.Request.Context(), tutorID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, courses)
}

// Create godoc
// POST /courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, course)
}

// Update godoc
// PUT /courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// Delete godoc
// DELETE /courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "message": "Course deleted successfully"})
}

// Assign godoc
// POST /courses/tutor/:tutorId/course/:courseId
func (h *CourseHandler) Assign(c *gin.Context) {
	tutorID, courseID, ok := tutorCourseParams(c)
	if !ok {
		return
	}

	if err := h.courseService.Assign(c.Request.Context(), tutorID, courseID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"success": true, "message": "Course assigned to tutor"})
}

// Unassign godoc
// DELETE /courses/tutor/:tutorId/course/:courseId
func (h *CourseHandler) Unassign(c *gin.Context) {
	tutorID, courseID, ok := tutorCourseParams(c)
	if !ok {
		return
	}

	if err := h.courseService.Unassign(c.Request.Context(), tutorID, courseID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "message": "Course removed from tutor"})
}

func tutorCourseParams(c *gin.Context) (int, int, bool) {
	tutorID, ok := paramID(c, "tutorId")
	if !ok {
		return 0, 0, false
	}
	courseID, ok := paramID(c, "courseId")
	if !ok {
		return 0, 0, false
	}
	return tutorID, courseID, true
}
