package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"photobooth/internal/delivery/http/controllers"
	"photobooth/internal/delivery/http/middleware"
	"photobooth/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routeRecorder implements domain.EventService and records which operation ran.
type routeRecorder struct {
	called string
}

func (s *routeRecorder) CreateEvent(_ context.Context, _ int64, _ domain.EventDraft) (*domain.Event, error) {
	s.called = "create"
	return &domain.Event{ID: 1}, nil
}

func (s *routeRecorder) ListEvents(_ context.Context, _ domain.PaginationParams) ([]*domain.Event, int, error) {
	s.called = "list"
	return nil, 0, nil
}

func (s *routeRecorder) GetEventBySlug(_ context.Context, slug string) (*domain.Event, []*domain.Photo, error) {
	s.called = "get:" + slug
	return &domain.Event{ID: 1, Slug: slug}, []*domain.Photo{}, nil
}

func (s *routeRecorder) CheckTitle(_ context.Context, title string) (domain.TitleCheck, error) {
	s.called = "check:" + title
	return domain.TitleCheck{Title: title}, nil
}

func (s *routeRecorder) DeleteEvent(_ context.Context, eventID, _ int64) error {
	s.called = "delete"
	return nil
}

func (s *routeRecorder) ResolveAdmin(_ context.Context, _ string) (int64, error) {
	return 1, nil
}

func TestNewRouter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := &routeRecorder{}
	guarded := 0
	requireAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			guarded++
			next(w, r.WithContext(middleware.SetAdminID(r.Context(), 1)))
		}
	}
	limited := 0
	limit := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			limited++
			next(w, r)
		}
	}
	mux := NewRouter(controllers.NewEventController(logger, svc), requireAuth, limit)

	tests := []struct {
		method      string
		target      string
		body        string
		wantStatus  int
		wantCalled  string
		wantGuarded int
		wantLimited int
	}{
		{http.MethodGet, "/events", "", http.StatusOK, "list", 0, 0},
		{http.MethodGet, "/events/title-check?title=gala", "", http.StatusOK, "check:gala", 0, 1},
		{http.MethodGet, "/events/gala", "", http.StatusOK, "get:gala", 0, 0},
		{http.MethodPost, "/events", `{}`, http.StatusCreated, "create", 1, 0},
		{http.MethodDelete, "/events/7", "", http.StatusOK, "delete", 1, 0},
		{http.MethodPut, "/events/7", "", http.StatusMethodNotAllowed, "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			svc.called, guarded, limited = "", 0, 0
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, svc.called)
			assert.Equal(t, tt.wantGuarded, guarded)
			assert.Equal(t, tt.wantLimited, limited)
		})
	}
}
