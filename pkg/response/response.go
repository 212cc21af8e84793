package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/apperr"
)

// Response is the uniform API envelope.
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    interface{}     `json:"data,omitempty"`
	Details []apperr.Detail `json:"details,omitempty"`
}

// ── Success responses ──

// OK writes a 200 success response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 success response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// ── Error responses ──

// Error writes a generic error response.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// AppError maps an application error to the HTTP surface, carrying its
// item-level details through unchanged.
func AppError(c *gin.Context, err error) {
	var status, code int
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status, code = http.StatusUnprocessableEntity, 20001
	case apperr.KindInvalidTransition:
		status, code = http.StatusConflict, 20002
	case apperr.KindForbidden:
		status, code = http.StatusForbidden, 20003
	case apperr.KindNotFound:
		status, code = http.StatusNotFound, 20004
	case apperr.KindConflict:
		status, code = http.StatusConflict, 20005
	default:
		InternalError(c)
		return
	}
	c.JSON(status, Response{
		Code:    code,
		Message: err.Error(),
		Details: apperr.DetailsOf(err),
	})
}

// ── Common shortcuts ──

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "internal server error")
}
