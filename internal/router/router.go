package router

import (
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"boardapi/docs"
	"boardapi/internal/auth"
	"boardapi/internal/config"
	apperrors "boardapi/internal/errors"
	"boardapi/internal/handler"
	"boardapi/internal/ratelimit"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Account    *handler.AccountHandler
	BoardPost  *handler.BoardPostHandler
	SavedImage *handler.SavedImageHandler
	Health     *handler.HealthHandler
}

// Register wires routes and middleware. signupStore may be nil, in which case
// registration is not rate limited.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	jwtService *auth.JWTService,
	signupStore middleware.RateLimiterStore,
	h Handlers,
) {
	e.HideBanner = true
	// Rate limiting keys on the socket address; forwarded headers are client controlled.
	e.IPExtractor = echo.ExtractIPDirect()
	e.HTTPErrorHandler = errorHandler(log)
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(otelecho.Middleware(cfg.ServiceName))
	e.Use(requestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(middleware.Gzip())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", h.Health.Live)
	e.GET("/health", h.Health.Ready)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: registry}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	secured := echojwt.WithConfig(jwtConfig(jwtService, false))
	optional := echojwt.WithConfig(jwtConfig(jwtService, true))
	readAuth := func(public bool) echo.MiddlewareFunc {
		if public {
			return optional
		}
		return secured
	}

	api := e.Group("/api")

	// Account routes
	accounts := api.Group("/accounts")
	var signup []echo.MiddlewareFunc
	if signupStore != nil {
		signup = append(signup, ratelimit.Middleware(signupStore))
	}
	accounts.POST("", h.Account.Register, signup...)
	accounts.POST("/login", h.Account.Login)
	accounts.GET("", h.Account.List, secured)
	accounts.GET("/:id", h.Account.Get, secured)
	accounts.PUT("/update", h.Account.UpdateProfile, secured)
	accounts.PUT("/changepassword", h.Account.ChangePassword, secured)
	accounts.DELETE("/delete", h.Account.Delete, secured)

	// Board post routes
	posts := api.Group("/board-posts")
	posts.POST("", h.BoardPost.Create, secured)
	posts.GET("", h.BoardPost.List, readAuth(cfg.Access.BoardPostsPublicRead))
	posts.GET("/mine", h.BoardPost.ListMine, secured)
	posts.GET("/:id", h.BoardPost.Get, readAuth(cfg.Access.BoardPostsPublicRead))
	posts.PUT("/:id", h.BoardPost.Update, secured)
	posts.DELETE("/:id", h.BoardPost.Delete, secured)

	// Saved image routes
	images := api.Group("/saved-images")
	images.POST("/save", h.SavedImage.Save, secured)
	images.GET("/mine", h.SavedImage.ListMine, secured)
	images.DELETE("/:id", h.SavedImage.Delete, secured)
	images.GET("/users-with-images-count", h.SavedImage.CountSavers, readAuth(cfg.Access.SavedImagesCountPublic))
	images.GET("/image-user-count/:encodedUrl", h.SavedImage.CountSaversForImage, readAuth(cfg.Access.ImageUserCountPublic))
}

// jwtConfig validates bearer tokens with jwtService and stores *auth.Claims
// under handler.ContextKeyClaims. With optional set, requests without a valid
// token pass through anonymously.
func jwtConfig(jwtService *auth.JWTService, optional bool) echojwt.Config {
	return echojwt.Config{
		ContextKey:  handler.ContextKeyClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ContinueOnIgnoredError: optional,
		ErrorHandler: func(c echo.Context, err error) error {
			if optional {
				return nil
			}
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
		},
	}
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}

// errorHandler renders every error as an ErrorResponse. 5xx causes are logged
// and reported to Sentry; the client only sees a generic message.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he, ok := err.(*echo.HTTPError)
		if !ok {
			mapped := apperrors.MapErrorToHTTP(err)
			he = echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse()).SetInternal(err)
		}

		var body apperrors.ErrorResponse
		switch m := he.Message.(type) {
		case apperrors.ErrorResponse:
			body = m
		case string:
			body = apperrors.ErrorResponse{Error: m, Code: statusCode(he.Code)}
		default:
			body = apperrors.ErrorResponse{Error: http.StatusText(he.Code), Code: statusCode(he.Code)}
		}

		if he.Code >= http.StatusInternalServerError {
			cause := err
			if he.Internal != nil {
				cause = he.Internal
			}
			log.Error("request failed",
				zap.Error(cause),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			if hub := sentryecho.GetHubFromContext(c); hub != nil {
				hub.CaptureException(cause)
			} else if sentry.CurrentHub().Client() != nil {
				sentry.CaptureException(cause)
			}
			body = apperrors.MapErrorToHTTP(cause).ToErrorResponse()
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, body)
		}
		if err != nil {
			log.Warn("failed to write error response", zap.Error(err))
		}
	}
}

func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
