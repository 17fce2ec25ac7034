package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/msgsystec/backoffice/config"
	"github.com/msgsystec/backoffice/internal/auth"
	"github.com/msgsystec/backoffice/internal/db"
	"github.com/msgsystec/backoffice/internal/handlers"
	"github.com/msgsystec/backoffice/internal/services"
	"github.com/msgsystec/backoffice/internal/sheets"
	"github.com/msgsystec/backoffice/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	logger     *slog.Logger
}

// New constructs a Server: database pool, repositories, services,
// routes, and transport timeouts.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := newLogger(cfg)

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	userRepo := store.NewUserRepository(dbConn)
	wahaRepo := store.NewWahaSessionRepository(dbConn)

	var codec auth.TokenCodec = auth.NewSignedCodec(cfg.JWTSecret)
	if cfg.TokenCompatLegacy {
		logger.Warn("running with the legacy unsigned token codec; tokens are not tamper-evident")
		codec = auth.NewLegacyCodec()
	}

	sheetClient, err := sheets.NewClient(ctx, cfg.Google, cfg.FrontendURL)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init sheets client: %w", err)
	}

	authService := services.NewAuthService(userRepo, codec)
	userService := services.NewUserService(userRepo)
	sheetService := services.NewSheetService(sheetClient, logger)
	wahaService := services.NewWahaService(wahaRepo, services.UnavailableGateway{})

	cookies := handlers.NewCookieHelper(cfg.IsProduction())
	authHandler := handlers.NewAuthHandler(authService, userService, cookies)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		handlers.CORS(cfg.FrontendURL),
	)

	router.Get("/health", handlers.Health)
	router.Route("/api/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authHandler)
	})
	router.Route("/api/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, authHandler.RequireAuth, authHandler.RequireAdmin)
	})
	router.Route("/api/sheets", func(r chi.Router) {
		handlers.SheetRouter(r, sheetService, authHandler.RequireAuth)
	})
	router.Route("/api/waha", func(r chi.Router) {
		handlers.WahaRouter(r, wahaService, authHandler.RequireAuth)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 3001
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server configured", slog.Int("port", port), slog.String("env", cfg.Env))

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("server listening", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
