package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ierr "taxengine/internal/errors"
	"taxengine/pkg/response"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case ierr.Is(err, ierr.ErrValidation),
		ierr.Is(err, ierr.ErrInvalidAmount),
		ierr.Is(err, ierr.ErrInvalidRule):
		return http.StatusBadRequest
	case ierr.Is(err, ierr.ErrNotFound),
		ierr.Is(err, ierr.ErrRuleNotFound),
		ierr.Is(err, ierr.ErrNoDefaultProfile):
		return http.StatusNotFound
	case ierr.Is(err, ierr.ErrDuplicateRule),
		ierr.Is(err, ierr.ErrAlreadyExists),
		ierr.Is(err, ierr.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal errors are attached to the
// gin context for the request logger and never leak their message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := ierr.Hint(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "Internal server error"
	}
	c.JSON(status, response.Error(status, message))
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}

// profileID parses the :id path parameter, writing a 400 when it is malformed.
func profileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid tax profile ID"))
		return uuid.Nil, false
	}
	return id, true
}
