package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

type mockBookingService struct {
	bookings []*domain.Booking
	total    int
	err      error
}

func (m *mockBookingService) CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	booking.ID = "bk-1"
	return &domain.Event{ID: booking.EventID}, nil
}

func (m *mockBookingService) ListBookingsByEvent(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.bookings, m.total, nil
}

func newBookingRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/events/ev-1/bookings", strings.NewReader(body))
	req.SetPathValue("eventID", "ev-1")
	return req
}

func TestBookingController_CreateBooking_Success(t *testing.T) {
	ctrl := NewBookingController(discardLogger(), &mockBookingService{})

	w := httptest.NewRecorder()
	ctrl.CreateBooking(w, newBookingRequest(`{"email": "jane@example.com"}`))

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

func TestBookingController_CreateBooking_MissingEmail(t *testing.T) {
	ctrl := NewBookingController(discardLogger(), &mockBookingService{})

	w := httptest.NewRecorder()
	ctrl.CreateBooking(w, newBookingRequest(`{}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestBookingController_CreateBooking_InvalidEmail(t *testing.T) {
	svc := &mockBookingService{err: domain.ErrInvalidEmail}
	ctrl := NewBookingController(discardLogger(), svc)

	w := httptest.NewRecorder()
	ctrl.CreateBooking(w, newBookingRequest(`{"email": "not-an-email"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestBookingController_CreateBooking_EventNotFound(t *testing.T) {
	svc := &mockBookingService{err: domain.ErrEventNotFound}
	ctrl := NewBookingController(discardLogger(), svc)

	w := httptest.NewRecorder()
	ctrl.CreateBooking(w, newBookingRequest(`{"email": "jane@example.com"}`))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestBookingController_ListBookings_Success(t *testing.T) {
	svc := &mockBookingService{
		bookings: []*domain.Booking{{ID: "bk-1", EventID: "ev-1", Email: "jane@example.com"}},
		total:    1,
	}
	ctrl := NewBookingController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/ev-1/bookings", nil)
	req.SetPathValue("eventID", "ev-1")
	w := httptest.NewRecorder()
	ctrl.ListBookings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}
