package router

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"photoshare/internal/auth"
	"photoshare/internal/config"
	apperrors "photoshare/internal/errors"
	"photoshare/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.SessionManager,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	photoHandler *handler.PhotoHandler,
	statsHandler *handler.StatsHandler,
	infoHandler *handler.InfoHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.BlobBackend == config.BlobFS {
		e.Static("/images", cfg.ImageDir)
	}

	// Public routes
	e.POST("/user", authHandler.Register)
	e.POST("/admin/login", authHandler.Login)
	e.POST("/admin/logout", authHandler.Logout)
	e.GET("/test", infoHandler.Test)
	e.GET("/test/:p1", infoHandler.Test)

	// Secured routes (require a live session cookie)
	secured := e.Group("", SessionMiddleware(sessions))

	secured.GET("/admin/checkSession", authHandler.CheckSession)

	secured.GET("/user/list", userHandler.ListUsers)
	secured.GET("/user/:id", userHandler.GetUser)

	secured.GET("/photosOfUser/:id", photoHandler.PhotosOfUser)
	secured.POST("/photos/new", photoHandler.Upload)
	secured.GET("/photo/counts", statsHandler.PhotoCounts)
	secured.GET("/photo/:photoId", photoHandler.GetPhoto)
	secured.POST("/commentsOfPhoto/:photoId", photoHandler.AddComment)

	secured.GET("/comment/counts", statsHandler.CommentCounts)
	secured.GET("/commentsByUser/:userId", statsHandler.CommentsByUser)
}

const sessionErrorKey = "session_error"

// SessionMiddleware rejects requests without a live session cookie and
// exposes the resolved *auth.Session under handler.SessionContextKey.
func SessionMiddleware(sessions *auth.SessionManager) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + auth.CookieName,
		ContextKey:  handler.SessionContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			session, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil && !errors.Is(err, apperrors.ErrUnauthenticated) {
				c.Set(sessionErrorKey, err)
			}
			return session, err
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
			if storeErr, ok := c.Get(sessionErrorKey).(error); ok {
				// The token was fine but the session store failed.
				c.Logger().Error(storeErr)
				httpErr = apperrors.MapErrorToHTTP(storeErr)
			}
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the request validator. Field names in errors are the
// json names and blank strings fail "notblank".
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Only the first failing field
// is reported.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.Required(fieldErrs[0].Field())
	}
	return err
}
