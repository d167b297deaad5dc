package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personalPlanner/internal/logger"
	"personalPlanner/internal/models/event"
	rep "personalPlanner/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) EventService {
	return EventService{
		repo: repo,
	}
}

type CreateEventParams struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
}

func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (*event.Event, error) {
	if params.Title == "" {
		return nil, NewValidationError("title", "не может быть пустым")
	}
	if params.StartTime.IsZero() {
		return nil, NewValidationError("start_time", "обязательное поле")
	}

	e := &event.Event{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("создание события: %w", err)
	}
	return e, nil
}

func (s *EventService) GetEvents(ctx context.Context) ([]*event.Event, error) {
	events, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение событий: %w", err)
	}
	return events, nil
}

func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Событие не найдено", zap.String("target_id", id.String()))
			return nil, NewNotFound(ResourceEvent, id.String())
		}
		return nil, fmt.Errorf("получение события: %w", err)
	}
	return e, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, options ...event.EventOption) (*event.Event, error) {
	e, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}

	if err := s.repo.Update(ctx, e); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceEvent, id.String())
		}
		return nil, fmt.Errorf("обновление события: %w", err)
	}
	return e, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(ResourceEvent, id.String())
		}
		return fmt.Errorf("удаление события: %w", err)
	}
	return nil
}
