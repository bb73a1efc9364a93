// Package httperr builds the JSON error envelope shared by every endpoint.
package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const InternalMessage = "Internal server error"

type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

// New derives the machine-readable code from status.
func New(status int, msg string, detail any) Response {
	return Response{
		Status: status,
		Error:  Body{Code: codeFor(status), Message: msg},
		Detail: detail,
	}
}

func Internal() Response {
	return New(http.StatusInternalServerError, InternalMessage, nil)
}

// AbortWithError records err on the context so ErrorHandler and the request log can see it.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "booking_conflict"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	}
	if status >= http.StatusInternalServerError {
		return "internal"
	}
	return "error"
}
