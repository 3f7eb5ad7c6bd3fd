package http

import (
	"errors"
	"net/http"

	"orchestrator/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps an application error to its HTTP status. Persistence kinds
// are checked first: a PersistenceError may wrap a validation cause from a
// corrupt stored record, which is still a server side failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPersistence):
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrPublish):
		return http.StatusServiceUnavailable
	case errs.IsValidation(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var messages = map[int]string{
	http.StatusBadRequest:          "Invalid request",
	http.StatusNotFound:            "Order not found",
	http.StatusConflict:            "Order was modified concurrently or is in the wrong state",
	http.StatusInternalServerError: "Internal error",
	http.StatusServiceUnavailable:  "Order notification failed, order left pending",
}

func (s *Server) writeError(c echo.Context, err error) error {
	status := statusFor(err)
	resp := ErrorResponse{Code: status, Message: messages[status]}
	if status == http.StatusBadRequest {
		resp.Fields = errs.ValidationFields(err)
	}

	ctx := c.Request().Context()
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx, "Request failed", "path", c.Path(), "status", status, "error", err)
	} else {
		s.logger.InfoContext(ctx, "Request rejected", "path", c.Path(), "status", status, "error", err)
	}
	return c.JSON(status, resp)
}
