package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"photoshare/internal/auth"
	apperrors "photoshare/internal/errors"
	"photoshare/internal/logging"
	"photoshare/internal/service"
)

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Secure bool
}

// AuthHandler handles registration and session endpoints.
type AuthHandler struct {
	userService service.UserService
	sessions    *auth.SessionManager
	cookie      CookieConfig
	log         logging.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(userService service.UserService, sessions *auth.SessionManager, cookie CookieConfig, log logging.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions, cookie: cookie, log: log}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	LoginName   string `json:"login_name" validate:"notblank"`
	Password    string `json:"password" validate:"notblank"`
	FirstName   string `json:"first_name" validate:"notblank"`
	LastName    string `json:"last_name" validate:"notblank"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	LoginName string `json:"login_name" validate:"notblank"`
	Password  string `json:"password" validate:"notblank"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} model.RegisteredUser
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, err)
	}

	user, err := h.userService.Register(c.Request().Context(), service.RegisterInput{
		LoginName:   req.LoginName,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Location:    req.Location,
		Description: req.Description,
		Occupation:  req.Occupation,
	})
	if err != nil {
		return fail(c, h.log, err)
	}

	return c.JSON(http.StatusOK, user.Registered())
}

// Login godoc
// @Summary Log in and receive a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} model.UserSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, err)
	}

	ctx := c.Request().Context()
	user, err := h.userService.Verify(ctx, req.LoginName, req.Password)
	if err != nil {
		return fail(c, h.log, err)
	}

	session, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		return fail(c, h.log, err)
	}
	c.SetCookie(h.sessionCookie(session.Token, session.ExpiresAt))

	return c.JSON(http.StatusOK, user.Summary())
}

// Logout godoc
// @Summary Destroy the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		token = cookie.Value
	}

	if err := h.sessions.Destroy(c.Request().Context(), token); err != nil {
		return fail(c, h.log, err)
	}

	expired := h.sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	c.SetCookie(expired)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// CheckSession godoc
// @Summary Return the logged in user
// @Tags auth
// @Produce json
// @Success 200 {object} model.UserSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/checkSession [get]
func (h *AuthHandler) CheckSession(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return fail(c, h.log, err)
	}

	user, err := h.userService.GetUser(c.Request().Context(), session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return fail(c, h.log, apperrors.ErrUnauthenticated)
		}
		return fail(c, h.log, err)
	}

	return c.JSON(http.StatusOK, user.Summary())
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
