package webserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/talkincode/stockbill/internal/app"
	"github.com/talkincode/stockbill/internal/auth"
	"github.com/talkincode/stockbill/internal/storage"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
)

const scopedIDKey = "scoped_id"

// Options selects the optional parts of a server
type Options struct {
	// Name labels metrics and selects the swagger instance
	Name string
	// Secured puts every Api* route behind JWT bearer validation
	Secured bool
	// Swagger serves /swagger/* from the named swag instance
	Swagger bool
}

// Server wraps echo with the route helpers the api packages register on
type Server struct {
	root        *echo.Echo
	api         *echo.Group
	bearer      echo.MiddlewareFunc
	appCtx      app.AppContext
	singletonID string
	errLog      io.WriteCloser
}

// NewServer builds the echo instance with the shared middleware stack
func NewServer(appCtx app.AppContext, opts Options) (*Server, error) {
	cfg := appCtx.Config()
	s := &Server{
		root:        echo.New(),
		appCtx:      appCtx,
		singletonID: uuid.NewString(),
	}
	if cfg.Web.ErrorLog != "" {
		s.errLog = &lumberjack.Logger{
			Filename:   cfg.Web.ErrorLog,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     30,
		}
	}

	e := s.root
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.JSONSerializer = JSONSerializer{}
	e.Validator = NewValidator()
	if s.errLog != nil {
		e.HTTPErrorHandler = HTTPErrorHandler(s.errLog)
	} else {
		e.HTTPErrorHandler = HTTPErrorHandler(io.Discard)
	}

	promMw, err := echoprometheus.MiddlewareConfig{
		Namespace:  "stockbill",
		Subsystem:  opts.Name,
		Registerer: appCtx.Registry(),
	}.ToMiddleware()
	if err != nil {
		return nil, errors.Wrap(err, "register http metrics")
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			zap.L().Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(promMw)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, s.appCtx)
			c.Set(scopedIDKey, uuid.NewString())
			return next(c)
		}
	})

	if opts.Secured {
		if cfg.Auth.JwtSecret == "" {
			return nil, auth.ErrMissingSecret
		}
		if cfg.Auth.EncryptionKey == "" {
			return nil, auth.ErrMissingEncryptionKey
		}
		s.bearer = echojwt.WithConfig(echojwt.Config{
			SigningKey:    []byte(cfg.Auth.JwtSecret),
			SigningMethod: "HS256",
			NewClaimsFunc: func(c echo.Context) jwt.Claims { return auth.NewClaims() },
		})
	}

	s.api = e.Group("/api")

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: appCtx.Registry(),
	}))
	if opts.Swagger {
		e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(opts.Name)))
	}
	if cfg.Web.StaticDir != "" {
		e.Static("/"+storage.ImagesFolder, path.Join(cfg.Web.StaticDir, storage.ImagesFolder))
	}
	return s, nil
}

// Echo exposes the underlying echo instance
func (s *Server) Echo() *echo.Echo {
	return s.root
}

// SingletonID is created once per server
func (s *Server) SingletonID() string {
	return s.singletonID
}

// ScopedID returns the id created for the current request
func ScopedID(c echo.Context) string {
	id, _ := c.Get(scopedIDKey).(string)
	return id
}

// ApiGET registers a GET route under /api, behind JWT when secured
func (s *Server) ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.GET(path, h, s.secured(m)...)
}

func (s *Server) ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.POST(path, h, s.secured(m)...)
}

func (s *Server) ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.PUT(path, h, s.secured(m)...)
}

func (s *Server) ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.DELETE(path, h, s.secured(m)...)
}

// PubGET registers an open GET route under /api
func (s *Server) PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.GET(path, h, m...)
}

func (s *Server) PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.POST(path, h, m...)
}

// RootGET registers a GET route outside /api, behind JWT when secured
func (s *Server) RootGET(path string, h echo.HandlerFunc) {
	s.root.GET(path, h, s.secured(nil)...)
}

func (s *Server) secured(m []echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if s.bearer == nil {
		return m
	}
	return append([]echo.MiddlewareFunc{s.bearer}, m...)
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	cfg := s.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.root.Shutdown(sctx); err != nil {
			zap.S().Errorf("web server shutdown error %s", err.Error())
		}
	}()

	zap.S().Infof("Prepare to start web server on %s", addr)
	err := s.root.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close releases the error log file
func (s *Server) Close() error {
	if s.errLog != nil {
		return s.errLog.Close()
	}
	return nil
}
