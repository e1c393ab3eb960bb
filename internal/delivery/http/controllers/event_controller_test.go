package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

type mockEventService struct {
	event  *domain.Event
	events []*domain.Event
	total  int
	err    error
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = "ev-1"
	return nil
}

func (m *mockEventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	return m.event, m.err
}

func (m *mockEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) ListEvents(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.events, m.total, nil
}

func (m *mockEventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) DeleteEvent(ctx context.Context, id string) error {
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

const validCreateBody = `{
	"title": "Tech Summit 2024",
	"date": "March 5, 2024",
	"time": "2:30 PM",
	"mode": "hybrid",
	"agenda": ["Opening keynote"],
	"tags": ["tech"]
}`

func TestEventController_CreateEvent_Success(t *testing.T) {
	ctrl := NewEventController(discardLogger(), &mockEventService{})

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(validCreateBody))
	w := httptest.NewRecorder()
	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestEventController_CreateEvent_MissingFields(t *testing.T) {
	ctrl := NewEventController(discardLogger(), &mockEventService{})

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title": ""}`))
	w := httptest.NewRecorder()
	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestEventController_CreateEvent_InvalidDate(t *testing.T) {
	svc := &mockEventService{err: domain.ErrInvalidDateFormat}
	ctrl := NewEventController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(validCreateBody))
	w := httptest.NewRecorder()
	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestEventController_CreateEvent_DuplicateSlug(t *testing.T) {
	svc := &mockEventService{err: domain.ErrDuplicateSlug}
	ctrl := NewEventController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(validCreateBody))
	w := httptest.NewRecorder()
	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestEventController_GetEventBySlug_NotFound(t *testing.T) {
	svc := &mockEventService{err: domain.ErrNotFound}
	ctrl := NewEventController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	req.SetPathValue("slug", "missing")
	w := httptest.NewRecorder()
	ctrl.GetEventBySlug(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestEventController_ListEvents_Success(t *testing.T) {
	svc := &mockEventService{
		events: []*domain.Event{{ID: "ev-1", Title: "Tech Summit", Slug: "tech-summit"}},
		total:  1,
	}
	ctrl := NewEventController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events?mode=hybrid&page=1", nil)
	w := httptest.NewRecorder()
	ctrl.ListEvents(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestEventController_UpdateEvent_NotFound(t *testing.T) {
	svc := &mockEventService{err: domain.ErrNotFound}
	ctrl := NewEventController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodPatch, "/events/ev-404", strings.NewReader(`{"venue": "Hall B"}`))
	req.SetPathValue("eventID", "ev-404")
	w := httptest.NewRecorder()
	ctrl.UpdateEvent(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
