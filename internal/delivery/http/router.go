package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventsmanager/internal/delivery/http/controllers"
	"eventsmanager/internal/delivery/http/middleware"
	"eventsmanager/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Event routes require a Bearer token; registration and token issuance do not.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	authController *controllers.AuthController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("GET /api/events/{$}", requireAuth(eventController.List))
	mux.HandleFunc("POST /api/events/{$}", requireAuth(eventController.Create))
	mux.HandleFunc("GET /api/events/{eventID}/{$}", requireAuth(eventController.Get))
	mux.HandleFunc("PATCH /api/events/{eventID}/{$}", requireAuth(eventController.Update))
	mux.HandleFunc("DELETE /api/events/{eventID}/{$}", requireAuth(eventController.Delete))
	mux.HandleFunc("POST /api/events/{eventID}/register/{$}", requireAuth(eventController.Register))
	mux.HandleFunc("GET /api/events/{eventID}/invitations/{$}", requireAuth(eventController.ListInvitations))

	// Auth
	mux.HandleFunc("POST /api/register/{$}", authController.Register)
	mux.HandleFunc("POST /api/token/{$}", authController.Token)

	// Swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}
