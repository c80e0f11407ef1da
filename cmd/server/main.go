package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/nomadtrail/nomad-backend-go/internal/api"
	"github.com/nomadtrail/nomad-backend-go/internal/config"
	"github.com/nomadtrail/nomad-backend-go/internal/database"
	"github.com/nomadtrail/nomad-backend-go/internal/handler"
	"github.com/nomadtrail/nomad-backend-go/internal/presence"
	"github.com/nomadtrail/nomad-backend-go/internal/repository"
	"github.com/nomadtrail/nomad-backend-go/internal/rules"
	"github.com/nomadtrail/nomad-backend-go/internal/service"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	registry, err := rules.Load()
	if err != nil {
		return fmt.Errorf("load jurisdiction rules: %w", err)
	}

	defaultPolicy := presence.Policy{
		Mode:              presence.CountMode(cfg.CountingMode),
		PartialDayRule:    presence.PartialDayRule(cfg.PartialDayRule),
		CountArrivalDay:   true,
		CountDepartureDay: true,
	}
	if err := defaultPolicy.Validate(); err != nil {
		return fmt.Errorf("default counting policy: %w", err)
	}

	stayRepo := repository.NewStayRepository(db)
	docRepo := repository.NewDocumentRepository(db)

	stayService := service.NewStayService(stayRepo, registry)
	presenceService := service.NewPresenceService(stayRepo, registry)
	docService := service.NewDocumentService(docRepo)
	chatService := service.NewChatService(
		cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
	)

	router := api.SetupRouter(cfg, log, api.Handlers{
		Stays:     handler.NewStayHandler(stayService),
		Status:    handler.NewStatusHandler(presenceService, defaultPolicy),
		Scenario:  handler.NewScenarioHandler(presenceService, defaultPolicy),
		Documents: handler.NewDocumentHandler(docService),
		Chat:      handler.NewChatHandler(chatService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Str("environment", cfg.Environment).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
