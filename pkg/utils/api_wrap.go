package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps the service error taxonomy onto HTTP codes.
// Gate failures keep their wrapped message so clients see, e.g., the
// threshold that rejected their fix.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCoordinates):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAccuracyTooLow):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAlreadyCheckedIn):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrOutOfRange):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrMissionNotAccepted):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrMissionNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCompanyNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDatabaseError):
		logrus.WithField("trace_id", c.GetString("trace_id")).WithError(err).Error("database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logrus.WithFields(logrus.Fields{
			"trace_id": c.GetString("trace_id"),
			"error":    err,
		}).Error("internal error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
