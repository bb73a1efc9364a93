package api

import (
	"net/http"

	resdto "resource-scheduler/internal/handler/dto/response"
	"resource-scheduler/internal/handler/httperr"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/commands"
	"resource-scheduler/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// abortWithUsecaseError maps the usecase error classes onto HTTP statuses.
func abortWithUsecaseError(c *gin.Context, err error) {
	var conflict *commands.ConflictError
	if errs.As(err, &conflict) {
		httperr.AbortWithError(c, http.StatusConflict, err, conflict.Reason, gin.H{
			"conflicts": resdto.FromConflicts(conflict.Conflicts),
		})
		return
	}
	httperr.AbortWithError(c, statusOf(err), err, publicMessage(err), nil)
}

func statusOf(err error) int {
	switch {
	case errs.Is(err, shared.ErrConflict):
		return http.StatusConflict
	case errs.Is(err, shared.ErrForbidden):
		return http.StatusForbidden
	case errs.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, shared.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	if statusOf(err) == http.StatusInternalServerError {
		return internalErrorMessage
	}
	return err.Error()
}
