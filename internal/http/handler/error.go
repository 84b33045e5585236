package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lattesdocs/internal/http/middleware"
	"lattesdocs/internal/publicid"
	"lattesdocs/internal/service"
)

// lookupNotFoundMessage is the one answer for an unknown code and for a
// code/email mismatch.
const lookupNotFoundMessage = "Request not found. Check the code and the email."

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeFieldError(c, status, code, "", message)
}

func writeFieldError(c *fiber.Ctx, status int, code, field, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Field:   field,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates service errors into the envelope. Unexpected
// errors are kept in locals for the access log and never echoed.
func writeServiceError(c *fiber.Ctx, err error, notFoundMessage string) error {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrRequestFinalized):
		return writeError(c, fiber.StatusConflict, "REQUEST_FINALIZED", err.Error())
	case errors.As(err, &ve):
		code := "VALIDATION_ERROR"
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			code = "FILE_TOO_LARGE"
		case errors.Is(err, service.ErrExtensionNotAllowed):
			code = "EXTENSION_NOT_ALLOWED"
		}
		return writeFieldError(c, fiber.StatusBadRequest, code, ve.Field, ve.Message)
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", notFoundMessage)
	case errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	case errors.Is(err, publicid.ErrExhausted):
		c.Locals(middleware.ErrorLocalKey, err)
		return writeError(c, fiber.StatusInternalServerError, "CAPACITY_EXHAUSTED", "could not allocate a request code, try again later")
	default:
		c.Locals(middleware.ErrorLocalKey, err)
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			c.Locals(middleware.ErrorLocalKey, err)
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body exceeds the upload limit")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
