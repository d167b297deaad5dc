package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personalPlanner/internal/logger"
	"personalPlanner/internal/models/journal"
	rep "personalPlanner/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JournalService struct {
	repo JournalRepository
}

func NewJournalService(repo JournalRepository) JournalService {
	return JournalService{
		repo: repo,
	}
}

type CreateEntryParams struct {
	EntryType string
	Content   map[string]any
	Timestamp *time.Time
}

func (s *JournalService) CreateEntry(ctx context.Context, params CreateEntryParams) (*journal.Entry, error) {
	if params.EntryType == "" {
		return nil, NewValidationError("entry_type", "не может быть пустым")
	}
	if len(params.Content) == 0 {
		return nil, NewValidationError("content", "обязательное поле")
	}

	timestamp := time.Now().UTC()
	if params.Timestamp != nil {
		timestamp = *params.Timestamp
	}

	entry := &journal.Entry{
		ID:        uuid.New(),
		EntryType: params.EntryType,
		Content:   params.Content,
		Timestamp: timestamp,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("создание записи: %w", err)
	}
	return entry, nil
}

func (s *JournalService) GetEntries(ctx context.Context) ([]*journal.Entry, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение записей: %w", err)
	}
	return entries, nil
}

func (s *JournalService) GetEntryByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Запись дневника не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound(ResourceJournal, id.String())
		}
		return nil, fmt.Errorf("получение записи: %w", err)
	}
	return entry, nil
}

func (s *JournalService) UpdateEntry(ctx context.Context, id uuid.UUID, options ...journal.EntryOption) (*journal.Entry, error) {
	entry, err := s.GetEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, opt := range options {
		if opt != nil {
			opt(entry)
		}
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceJournal, id.String())
		}
		return nil, fmt.Errorf("обновление записи: %w", err)
	}
	return entry, nil
}

func (s *JournalService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(ResourceJournal, id.String())
		}
		return fmt.Errorf("удаление записи: %w", err)
	}
	return nil
}
