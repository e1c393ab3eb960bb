package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for booking operations.
var (
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEventNotFound = errors.New("event not found")
)

// Booking represents a seat reserved for an event. EventID must reference
// an existing Event at the moment the booking is saved; the storage layer
// has no foreign-key enforcement, so the service performs the lookup.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a new Booking with the given fields. ID is typically set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*Booking, int, error)
}

// BookingService defines the business logic for bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Event, error)
	ListBookingsByEvent(ctx context.Context, eventID string, params PaginationParams) ([]*Booking, int, error)
}
