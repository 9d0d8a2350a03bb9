package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/workhub-hr/assistant-core/internal/ai"
	"github.com/workhub-hr/assistant-core/internal/assistant"
	"github.com/workhub-hr/assistant-core/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// --- optional exchange archive ---
	var archive assistant.ExchangeArchive
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			logger.Fatal("db open error", zap.Error(err))
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			logger.Fatal("db ping error", zap.Error(err))
		}
		cancel()
		archive = assistant.NewPostgresArchive(db)
		logger.Info("exchange archive enabled")
	}

	// --- optional generative responder ---
	var responder ai.Responder
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		client, err := ai.NewOpenAIClient(key, os.Getenv("OPENAI_MODEL"), logger)
		if err != nil {
			logger.Fatal("openai client error", zap.Error(err))
		}
		responder = client
		logger.Info("generative responder enabled")
	}

	// --- router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	engine := server.NewEngine(responder, logger)
	handler := server.NewHandler(engine, archive, logger)
	server.RegisterRoutes(r, handler)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	logger.Info("listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
