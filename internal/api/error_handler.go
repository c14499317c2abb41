package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/frcparts/components-api/internal/core/domain"
)

// errorResponse is the body of every error response.
type errorResponse struct {
	Error string `json:"error"`
}

type errorMapping struct {
	err    error
	status int
	msg    string // empty means err.Error()
}

// knownErrors is checked in order with errors.Is. The two 401 messages are
// fixed so no response tells which check rejected the caller.
var knownErrors = []errorMapping{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "Could not validate credentials"},
	{domain.ErrForbidden, http.StatusForbidden, "Access denied: You can only access your own team's data"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrComponentExists, http.StatusConflict, "component already exists"},
	{domain.ErrComponentNotFound, http.StatusNotFound, "Component not found"},
	{domain.ErrNoFieldsToUpdate, http.StatusBadRequest, "No valid fields to update"},
	{domain.ErrInvalidInput, http.StatusUnprocessableEntity, ""},
}

// NewHTTPErrorHandler returns the echo.HTTPErrorHandler for the API. Domain
// errors get their status and fixed message, echo errors keep theirs, and
// anything else is logged and answered with a bare 500. Every 401 carries
// the Bearer challenge.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}

		if status == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, errorResponse{Error: msg})
	}
}

func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range knownErrors {
		if errors.Is(err, m.err) {
			if m.msg == "" {
				return m.status, err.Error()
			}
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "internal server error"
}
