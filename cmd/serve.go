package cmd

import (
	"context"
	"database/sql"
	"net"

	"github.com/vibast-solutions/ms-go-calendar/app/controller"
	"github.com/vibast-solutions/ms-go-calendar/app/middleware"
	"github.com/vibast-solutions/ms-go-calendar/app/repository"
	"github.com/vibast-solutions/ms-go-calendar/app/service"
	"github.com/vibast-solutions/ms-go-calendar/config"
	"github.com/vibast-solutions/ms-go-calendar/db"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Run schema migrations and start the HTTP (Echo) server for the calendar service.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.UsingFallbackSecrets() {
		logrus.Warn("Using built-in development JWT secrets; do not use in production")
	}

	conn, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	if err := db.RunMigrations(context.Background(), conn); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	userRepo := repository.NewUserRepository(conn)
	refreshTokenRepo := repository.NewRefreshTokenRepository(conn)
	eventRepo := repository.NewEventRepository(conn)

	if err := refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		logrus.WithError(err).Warn("Failed to purge expired refresh tokens")
	}
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	eventService := service.NewEventService(eventRepo)

	startHTTPServer(cfg, authService, eventService)
}

func startHTTPServer(cfg *config.Config, authService *service.AuthService, eventService *service.EventService) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authController := controller.NewAuthController(authService)
	eventController := controller.NewEventController(eventService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	auth := e.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.RefreshToken)
	auth.POST("/logout", authController.Logout)

	events := e.Group("/events")
	events.Use(authMiddleware.RequireAuth)
	events.GET("", eventController.List)
	events.GET("/:id", eventController.Get)
	events.POST("", eventController.Create)
	events.PUT("/:id", eventController.Update)
	events.DELETE("/:id", eventController.Delete)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}
