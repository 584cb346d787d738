package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorly-backend/internal/repository"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stemsi/tutorly-backend/internal/service"
	"github.com/stemsi/tutorly-backend/internal/validator"
)

// respondError writes the error body matching a service or repository error.
// Anything unrecognised is reported as a store failure.
func respondError(c *gin.Context, err error) {
	var validation *service.ValidationError
	var reference *repository.ReferenceError

	switch {
	case errors.As(err, &validation):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, validation.Message)
	case errors.As(err, &reference):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, reference.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrInvalidToken):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidToken)
	case errors.Is(err, service.ErrInvalidDate):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
	case errors.Is(err, service.ErrInvalidStatus):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidStatus)
	case errors.Is(err, service.ErrSlotBooked):
		response.Fail(c, http.StatusBadRequest, response.ErrSlotBooked)
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		response.Fail(c, http.StatusBadRequest, response.ErrDuplicate)
	case errors.Is(err, repository.ErrInUse):
		response.Fail(c, http.StatusBadRequest, response.ErrDependencyExists)
	default:
		_ = c.Error(err)
		response.FailWithDetails(c, http.StatusInternalServerError, response.ErrDB, err.Error())
	}
}

// paramID parses a numeric path parameter, answering INVALID_ID when it is not one.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// bindJSON binds the body into dst, answering VALIDATION_ERROR with field
// messages on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if fields := validator.Bind(c, dst); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return false
	}
	return true
}

func success(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"success": true})
}
