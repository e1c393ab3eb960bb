package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// validateEventFields covers the declarative field rules before the
// normalization pipeline runs. Failures map to domain.ErrInvalidInput.
func validateEventFields(e *domain.Event) error {
	switch {
	case e.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	case len(e.Title) > 100:
		return fmt.Errorf("%w: title must be at most 100 characters", domain.ErrInvalidInput)
	case len(e.Description) > 1000:
		return fmt.Errorf("%w: description must be at most 1000 characters", domain.ErrInvalidInput)
	case len(e.Overview) > 500:
		return fmt.Errorf("%w: overview must be at most 500 characters", domain.ErrInvalidInput)
	case !domain.ValidMode(e.Mode):
		return fmt.Errorf("%w: mode must be online, offline or hybrid", domain.ErrInvalidInput)
	case len(e.Agenda) == 0:
		return fmt.Errorf("%w: agenda must have at least one item", domain.ErrInvalidInput)
	case len(e.Tags) == 0:
		return fmt.Errorf("%w: at least one tag is required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateEventFields(event); err != nil {
		return err
	}
	if err := normalizeEvent(event, nil); err != nil {
		return err
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Mode != "" && !domain.ValidMode(filter.Mode) {
		return nil, 0, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, filter.Mode)
	}
	if filter.Date != "" {
		date, err := normalizeDate(filter.Date)
		if err != nil {
			return nil, 0, err
		}
		filter.Date = date
	}

	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

// applyPatch copies the set fields of patch onto e.
func applyPatch(e *domain.Event, patch domain.EventPatch) {
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Overview != nil {
		e.Overview = *patch.Overview
	}
	if patch.Image != nil {
		e.Image = *patch.Image
	}
	if patch.Venue != nil {
		e.Venue = *patch.Venue
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Time != nil {
		e.Time = *patch.Time
	}
	if patch.Mode != nil {
		e.Mode = *patch.Mode
	}
	if patch.Audience != nil {
		e.Audience = *patch.Audience
	}
	if patch.Agenda != nil {
		e.Agenda = patch.Agenda
	}
	if patch.Organizer != nil {
		e.Organizer = *patch.Organizer
	}
	if patch.Tags != nil {
		e.Tags = patch.Tags
	}
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	prev, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Work on a copy so the previous snapshot stays intact for the
	// changed-field checks in the normalization pipeline.
	updated := *prev
	applyPatch(&updated, patch)

	if err := validateEventFields(&updated); err != nil {
		return nil, err
	}
	if err := normalizeEvent(&updated, prev); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return nil, domain.ErrDuplicateSlug
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
