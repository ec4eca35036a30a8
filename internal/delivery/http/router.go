package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"photobooth/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// requireAuth guards the admin routes; limitTitleCheck throttles the
// title probe that the creation form calls while the admin types.
func NewRouter(
	eventController *controllers.EventController,
	requireAuth func(http.HandlerFunc) http.HandlerFunc,
	limitTitleCheck func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/title-check", limitTitleCheck(eventController.CheckTitle))
	mux.HandleFunc("GET /events/{slug}", eventController.GetEventBySlug)

	// Admin
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
