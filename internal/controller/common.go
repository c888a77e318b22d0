package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"tender-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 5
	defaultOffset = 0
)

type errorResponse struct {
	Reason string `json:"reason"`
}

func badRequest(c echo.Context, reason string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{reason})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{"username is required"})
}

// respondServiceError maps service failures to status codes: not-found
// outcomes to 404, ownership mismatch to 403, unknown requester to 401,
// invalid input to 400 and everything unexpected to an opaque 500.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrTenderNotFound),
		errors.Is(err, service.ErrBidNotFound),
		errors.Is(err, service.ErrNoSuchVersion):
		return c.JSON(http.StatusNotFound, errorResponse{err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{err.Error()})
	case errors.Is(err, service.ErrEmployeeNotFound):
		return c.JSON(http.StatusUnauthorized, errorResponse{err.Error()})
	case errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrNoNewChanges),
		errors.Is(err, service.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"internal error"})
	}
}

func validationMessages(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "invalid input"
	}

	var builder strings.Builder
	for _, fe := range ve {
		builder.WriteString(fmt.Sprintf("'%s': %s\n", fe.Field(), fieldMessage(fe)))
	}

	return builder.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	}

	return "incorrect value passed"
}
