package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"photoshare/internal/auth"
	"photoshare/internal/errors"
	"photoshare/internal/logging"
)

// SessionContextKey is where the gating middleware stores the *auth.Session.
const SessionContextKey = "session"

// fail converts err into the HTTP error returned to the client. Server-side
// failures are logged with their detail; the client only sees a generic message.
func fail(c echo.Context, log logging.Logger, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: message, Code: code})
}

// pathID parses the named path parameter as an identifier.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidID
	}
	return id, nil
}

// currentSession returns the session resolved by the gating middleware.
func currentSession(c echo.Context) (*auth.Session, error) {
	session, ok := c.Get(SessionContextKey).(*auth.Session)
	if !ok || session == nil {
		return nil, errors.ErrUnauthenticated
	}
	return session, nil
}
