package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"aiready/internal/cache"
	"aiready/internal/service"
	"aiready/internal/transport/rest/handler"
	"aiready/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	SamplerService    *service.SamplerService
	AssessmentService *service.AssessmentService
	HistoryService    *service.HistoryService
	ReadinessCache    cache.ReadinessCache
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.SamplerService, c.AssessmentService, c.HistoryService, c.ReadinessCache)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Employee routes (require portal auth)
	employeeRoutes := v1.NewRoute().Subrouter()
	employeeRoutes.Use(authMW.RequireEmployee)

	employeeRoutes.HandleFunc("/assessment/questions", assessmentHandler.GetQuestions).Methods("GET", "OPTIONS")
	employeeRoutes.HandleFunc("/assessment/sessions", assessmentHandler.StartSession).Methods("POST", "OPTIONS")
	employeeRoutes.HandleFunc("/assessment/sessions/{sessionId}", assessmentHandler.GetSession).Methods("GET", "OPTIONS")
	employeeRoutes.HandleFunc("/assessment/sessions/{sessionId}", assessmentHandler.Cancel).Methods("DELETE", "OPTIONS")
	employeeRoutes.HandleFunc("/assessment/sessions/{sessionId}/responses", assessmentHandler.RecordResponse).Methods("POST", "OPTIONS")
	employeeRoutes.HandleFunc("/assessment/sessions/{sessionId}/complete", assessmentHandler.Complete).Methods("POST", "OPTIONS")
	employeeRoutes.HandleFunc("/assessment/history", assessmentHandler.GetHistory).Methods("GET", "OPTIONS")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/assessment/readiness-board", assessmentHandler.GetReadinessBoard).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
