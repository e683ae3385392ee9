package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-calendar/app/entity"
	"github.com/vibast-solutions/ms-go-calendar/app/repository"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventForbidden    = errors.New("not authorized to access this event")
	ErrInvalidImportance = errors.New("invalid importance value")
)

type EventInput struct {
	Title       string
	Description *string
	Date        time.Time
	Importance  entity.Importance
}

type EventService struct {
	eventRepo *repository.EventRepository
}

func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

func (s *EventService) List(ctx context.Context, userID uint64) ([]*entity.Event, error) {
	return s.eventRepo.ListByUserID(ctx, userID)
}

func (s *EventService) Get(ctx context.Context, userID, eventID uint64) (*entity.Event, error) {
	return s.findOwned(ctx, userID, eventID)
}

func (s *EventService) Create(ctx context.Context, userID uint64, input EventInput) (*entity.Event, error) {
	importance, err := normalizeImportance(input.Importance)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event := &entity.Event{
		UserID:      userID,
		Title:       input.Title,
		Description: toNullString(input.Description),
		Date:        input.Date,
		Importance:  importance,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *EventService) Update(ctx context.Context, userID, eventID uint64, input EventInput) (*entity.Event, error) {
	importance, err := normalizeImportance(input.Importance)
	if err != nil {
		return nil, err
	}

	event, err := s.findOwned(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	event.Title = input.Title
	event.Description = toNullString(input.Description)
	event.Date = input.Date
	event.Importance = importance

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *EventService) Delete(ctx context.Context, userID, eventID uint64) error {
	if _, err := s.findOwned(ctx, userID, eventID); err != nil {
		return err
	}

	return s.eventRepo.Delete(ctx, eventID)
}

// findOwned applies the ownership check used by every by-id operation.
// Existence is checked before ownership, so a missing event is a 404 and a
// foreign event is a 403, never the other way around.
func (s *EventService) findOwned(ctx context.Context, userID, eventID uint64) (*entity.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if event.UserID != userID {
		return nil, ErrEventForbidden
	}
	return event, nil
}

// normalizeImportance rejects unknown values; an empty value takes the
// schema default.
func normalizeImportance(importance entity.Importance) (entity.Importance, error) {
	if importance == "" {
		return entity.ImportanceNormal, nil
	}
	if !importance.Valid() {
		return "", ErrInvalidImportance
	}
	return importance, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
