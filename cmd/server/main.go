package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/healthlens/backend/internal/extraction"
	"github.com/healthlens/backend/internal/llm"
	"github.com/healthlens/backend/internal/risk"
	"github.com/healthlens/backend/internal/service"
	"github.com/healthlens/backend/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "local" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8111"
	}

	ctx := context.Background()

	useMemoryStore := os.Getenv("USE_MEMORY_STORE") == "true" || os.Getenv("ENV") == "local"

	var storeImpl store.Store
	if useMemoryStore {
		log.Info().Msg("using in-memory store for local development")
		mem := store.NewMemoryStore()
		// Local dev gets a well-known session so the frontend works
		// without the auth subsystem running.
		_ = mem.CreateSession(ctx, &store.Session{
			Token:     "local-dev",
			ExpiresAt: time.Now().Add(24 * time.Hour),
		})
		storeImpl = mem
	} else {
		projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
		if projectID == "" {
			log.Fatal().Msg("GOOGLE_CLOUD_PROJECT is required outside local mode")
		}
		firestoreClient, err := firestore.NewClient(ctx, projectID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Firestore client")
		}
		defer firestoreClient.Close()
		storeImpl = store.NewFirestoreStore(firestoreClient)
	}

	var completer extraction.Completer
	var narrator risk.Completer
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		client := llm.NewGeminiClient(key)
		if os.Getenv("ENABLE_LLM_GENERATOR") != "false" {
			completer = client
		}
		narrator = client
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set; LLM extraction and narratives disabled")
	}

	var opts []extraction.Option
	if secs, err := strconv.Atoi(os.Getenv("LLM_TIMEOUT_SECONDS")); err == nil && secs > 0 {
		opts = append(opts, extraction.WithLLMTimeout(time.Duration(secs)*time.Second))
	}
	pipeline := extraction.NewPipeline(completer, opts...)
	scorer := &risk.Scorer{Client: narrator}

	svc := service.NewHealthService(storeImpl, pipeline, scorer)

	mux := http.NewServeMux()
	svc.Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:1234",
			"http://127.0.0.1:1234",
			"https://healthlens.app",
			"https://www.healthlens.app",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
		},
		AllowCredentials: true,
	})
	handler := c.Handler(mux)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	log.Info().Str("port", port).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
