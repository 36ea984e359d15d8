package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/pkg/response"
	"github.com/oksasatya/go-finances/pkg/validation"
)

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(kind mediator.Kind) int {
	switch kind {
	case mediator.KindValidation:
		return http.StatusBadRequest
	case mediator.KindUnauthorized:
		return http.StatusUnauthorized
	case mediator.KindDuplicate:
		return http.StatusConflict
	case mediator.KindNotFound:
		return http.StatusNotFound
	case mediator.KindCanceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// reply writes res in the API envelope, using okStatus on success.
func reply[T any](c *gin.Context, okStatus int, res mediator.Response[T]) {
	if res.Success {
		response.Success(c, okStatus, res.Payload, res.Message, nil)
		return
	}
	var details any
	if len(res.Violations) > 0 {
		details = res.Violations
	}
	response.Error[any](c, StatusFor(res.Kind), res.Message, details)
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
