package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personalPlanner/internal/logger"
	"personalPlanner/internal/models/journal"
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

func scanEntry(row pgx.Row) (*journal.Entry, error) {
	e := &journal.Entry{}
	err := row.Scan(
		&e.ID,
		&e.EntryType,
		&e.Content,
		&e.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Storage) Create(ctx context.Context, entryToCreate *journal.Entry) error {
	start := time.Now()

	query := `INSERT INTO journal_entries
				(id, entry_type, content, timestamp)
				VALUES ($1, $2, $3, $4)
				RETURNING timestamp`

	err := s.pool.QueryRow(ctx, query,
		entryToCreate.ID,
		entryToCreate.EntryType,
		entryToCreate.Content,
		entryToCreate.Timestamp,
	).Scan(&entryToCreate.Timestamp)

	if err != nil {
		logger.Error("Repository: Не удалось добавить запись дневника", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление записи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	start := time.Now()

	query := `SELECT id, entry_type, content, timestamp
				FROM journal_entries WHERE id = $1`

	e, err := scanEntry(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить запись дневника", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение записи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return e, nil
}

// GetAll отдаёт записи от новых к старым.
func (s *Storage) GetAll(ctx context.Context) ([]*journal.Entry, error) {
	start := time.Now()

	query := `SELECT id, entry_type, content, timestamp
				FROM journal_entries ORDER BY timestamp DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить записи дневника", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение записей: %w", err)
	}
	defer rows.Close()

	entries := []*journal.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования записи", err)
			return nil, fmt.Errorf("сканирование записи: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return entries, nil
}

func (s *Storage) Update(ctx context.Context, entryToUpdate *journal.Entry) error {
	start := time.Now()

	query := `UPDATE journal_entries
			SET content = $1,
				timestamp = $2
			WHERE id = $3
			RETURNING id`

	var id uuid.UUID
	err := s.pool.QueryRow(ctx, query,
		entryToUpdate.Content,
		entryToUpdate.Timestamp,
		entryToUpdate.ID,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить запись дневника", err)
		return fmt.Errorf("обновление записи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	query := `DELETE FROM journal_entries WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить запись дневника", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}
