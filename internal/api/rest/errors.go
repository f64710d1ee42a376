package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/dtroode/letterbox-server/internal/apperrors"
)

const kindInternal = "internal"

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// statusFor maps err to an HTTP status and response body. Errors that are not
// APIErrors are hidden behind a generic message.
func statusFor(err error) (int, errorResponse) {
	if apiErr, ok := apperrors.As(err); ok {
		return apiErr.HTTPStatus, errorResponse{Kind: string(apiErr.Kind), Detail: apiErr.Message}
	}

	switch {
	case errors.Is(err, context.Canceled):
		// nginx convention for a client that went away
		return 499, errorResponse{Kind: kindInternal, Detail: "request canceled"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errorResponse{Kind: kindInternal, Detail: "request timed out"}
	default:
		return http.StatusInternalServerError, errorResponse{Kind: kindInternal, Detail: "internal server error"}
	}
}

func abortWithError(c *gin.Context, err error) {
	code, body := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, body)
}

func abortValidation(c *gin.Context, detail string) {
	abortWithError(c, apperrors.NewErrValidation(detail))
}

// bindError turns a ShouldBindJSON failure into a validation error.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.NewErrValidation(strings.Join(lo.Map(verrs, func(fe validator.FieldError, _ int) string {
			return fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag())
		}), "; "))
	}
	return apperrors.NewErrValidation("invalid request body: " + err.Error())
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		abortValidation(c, fmt.Sprintf("field '%s' must be a UUID, got %q", name, raw))
		return uuid.Nil, false
	}
	return id, true
}
