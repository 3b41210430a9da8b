package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mathrand "math/rand/v2"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/studypilot/backend/internal/api"
	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/engine"
	"github.com/studypilot/backend/internal/generation"
	"github.com/studypilot/backend/internal/infrastructure/config"
	"github.com/studypilot/backend/internal/service"
	"github.com/studypilot/backend/internal/store"

	_ "github.com/studypilot/backend/docs" // generated swagger docs
)

// @title           StudyPilot API
// @version         1.0
// @description     Personalization and analytics engine — learns which study content works for each user and tracks their performance per document and topic.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	states := service.NewStateService(db, logger, bandit.DefaultWindowCap)
	recommender := bandit.NewRecommender(mathrand.NewPCG(entropySeed(), entropySeed()))
	eng := engine.New(states, recommender, engine.DefaultConfig(), logger)

	llm := generation.NewOllamaGenerator(cfg.LLMURL, cfg.LLMModel)
	bundles := service.NewBundleService(llm, logger)
	handler := api.NewHandler(eng, bundles, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// entropySeed draws one PCG seed word from the OS entropy pool.
func entropySeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
