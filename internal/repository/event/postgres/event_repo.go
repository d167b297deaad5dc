package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personalPlanner/internal/logger"
	"personalPlanner/internal/models/event"
	repo "personalPlanner/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func scanEvent(row pgx.Row) (*event.Event, error) {
	e := &event.Event{}
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.StartTime,
		&e.EndTime,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Storage) Create(ctx context.Context, eventToCreate *event.Event) error {
	start := time.Now()

	query := `INSERT INTO events
				(id, title, description, start_time, end_time)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		eventToCreate.ID,
		eventToCreate.Title,
		eventToCreate.Description,
		eventToCreate.StartTime,
		eventToCreate.EndTime,
	).Scan(&eventToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить событие", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление события: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	start := time.Now()

	query := `SELECT id, title, description, start_time, end_time, created_at
				FROM events WHERE id = $1`

	e, err := scanEvent(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить событие", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение события: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return e, nil
}

func (s *Storage) GetAll(ctx context.Context) ([]*event.Event, error) {
	start := time.Now()

	query := `SELECT id, title, description, start_time, end_time, created_at
				FROM events ORDER BY start_time`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить события", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение событий: %w", err)
	}
	defer rows.Close()

	events := []*event.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования события", err)
			return nil, fmt.Errorf("сканирование события: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return events, nil
}

func (s *Storage) Update(ctx context.Context, eventToUpdate *event.Event) error {
	start := time.Now()

	query := `UPDATE events
			SET title = $1,
				description = $2,
				start_time = $3,
				end_time = $4
			WHERE id = $5
			RETURNING id`

	var id uuid.UUID
	err := s.pool.QueryRow(ctx, query,
		eventToUpdate.Title,
		eventToUpdate.Description,
		eventToUpdate.StartTime,
		eventToUpdate.EndTime,
		eventToUpdate.ID,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить событие", err)
		return fmt.Errorf("обновление события: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	query := `DELETE FROM events WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить событие", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление события: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}
