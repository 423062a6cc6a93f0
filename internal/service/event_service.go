package service

import (
	"context"
	"errors"
	"time"

	"cookshare/internal/domain"
	"cookshare/internal/repository"
)

// EventService coordinates event posting, browsing, saving, and attendance.
type EventService interface {
	CreateEvent(ctx context.Context, userID int64, imageURL, title, caption, location string, at time.Time) (*domain.Event, error)
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	SaveEvent(ctx context.Context, userID, eventID int64) error
	AttendEvent(ctx context.Context, userID, eventID int64) (*domain.Event, error)
}

type eventService struct {
	events repository.EventRepository
	users  repository.UserRepository
}

func NewEventService(events repository.EventRepository, users repository.UserRepository) EventService {
	return &eventService{events: events, users: users}
}

func (s *eventService) CreateEvent(ctx context.Context, userID int64, imageURL, title, caption, location string, at time.Time) (*domain.Event, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	if at.IsZero() {
		return nil, errors.New("event time is required")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	event := &domain.Event{
		UserID:   userID,
		ImageURL: imageURL,
		Title:    title,
		Caption:  caption,
		Time:     at.UTC(),
		Location: location,
	}
	if _, err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	return s.events.Delete(ctx, id)
}

func (s *eventService) SaveEvent(ctx context.Context, userID, eventID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.events.Save(ctx, userID, eventID)
}

// AttendEvent marks the user as going and returns the event with its
// refreshed counter. Attending twice keeps the counter where it was.
func (s *eventService) AttendEvent(ctx context.Context, userID, eventID int64) (*domain.Event, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	if err := s.events.Attend(ctx, userID, eventID); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, eventID)
}
