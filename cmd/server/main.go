package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/careercompass/backend/internal/auth"
	"github.com/careercompass/backend/internal/config"
	"github.com/careercompass/backend/internal/handlers"
	appMiddleware "github.com/careercompass/backend/internal/middleware"
	"github.com/careercompass/backend/internal/models"
	"github.com/careercompass/backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	// Persistence gateway: one Mongo client for the process lifetime.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := services.NewMongoStore(ctx, cfg.MongoURL, cfg.MongoDBName)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close(context.Background())
	log.Println("MongoDB initialized successfully")

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiration)

	gemini := services.NewGeminiClient()
	if cfg.GeminiEndpoint != "" {
		gemini.Endpoint = cfg.GeminiEndpoint
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, store, tokens)
	profileHandler := handlers.NewProfileHandler(store, services.ExtractPDFText)
	careerHandler := handlers.NewCareerHandler(store, store, gemini)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(models.HealthResponse{Status: "healthy", Database: "mongodb"})
		})

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.BearerAuth(tokens, store))

			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)

			r.Post("/analyze-career", careerHandler.AnalyzeCareer)
			r.Post("/search-career", careerHandler.SearchCareer)
			r.Get("/analyses", careerHandler.ListAnalyses)
		})
	})

	log.Printf("Career Compass API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
