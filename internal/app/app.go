package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/argmine/argmine/internal/config"
	"github.com/argmine/argmine/internal/suggest"
	"github.com/argmine/argmine/internal/transport/middleware"
	"github.com/argmine/argmine/internal/transport/rest"
)

// Run is the application entry point. It loads configuration and the trained
// models, then serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pipeline, err := LoadPipeline(*cfg)
	if err != nil {
		return err
	}
	logger.Info("model loaded",
		slog.String("path", cfg.Model.CRFPath),
		slog.String("name", pipeline.ModelName()),
		slog.Any("labels", pipeline.Labels()),
	)

	suggester := suggest.New(cfg.LLM.APIKey, suggest.Config{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(*cfg, logger, pipeline, suggester),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	sentiments, lemmas := pipeline.CacheSizes()
	logger.Info("stopped", slog.Int("cached_sentiments", sentiments), slog.Int("cached_lemmas", lemmas))
	return nil
}

// NewHandler wires the REST handlers behind the middleware chain.
func NewHandler(cfg config.Config, logger *slog.Logger, pipeline *Pipeline, suggester *suggest.Suggester) http.Handler {
	router := rest.NewRouter(
		rest.NewHealthHandler(pipeline, BuildVersion()),
		rest.NewPredictHandler(pipeline, logger, cfg.Server.MaxBodyBytes),
		rest.NewRecommendHandler(suggester, logger, cfg.Server.MaxBodyBytes),
	)

	return middleware.Service(logger, cfg.CORS)(router)
}
