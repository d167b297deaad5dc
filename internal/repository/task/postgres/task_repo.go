package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personalPlanner/internal/logger"
	"personalPlanner/internal/models/task"
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

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

const taskColumns = `id,
				title,
				description,
				is_recurring,
				is_completed,
				due_date,
				start_time,
				end_time,
				time_tracked_seconds,
				created_at,
				recurrence_type,
				recurrence_group_id`

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.IsRecurring,
		&t.IsCompleted,
		&t.DueDate,
		&t.StartTime,
		&t.EndTime,
		&t.TimeTrackedSeconds,
		&t.CreatedAt,
		&t.RecurrenceType,
		&t.RecurrenceGroupID,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(id, title, description, is_recurring, is_completed, due_date,
				 start_time, end_time, time_tracked_seconds, recurrence_type, recurrence_group_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.ID,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.IsRecurring,
		taskToCreate.IsCompleted,
		taskToCreate.DueDate,
		taskToCreate.StartTime,
		taskToCreate.EndTime,
		taskToCreate.TimeTrackedSeconds,
		taskToCreate.RecurrenceType,
		taskToCreate.RecurrenceGroupID,
	).Scan(&taskToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// CreateSeries вставляет все экземпляры серии одной транзакцией:
// либо сохраняется вся серия, либо ничего.
func (s *Storage) CreateSeries(ctx context.Context, tasks []*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось открыть транзакцию", err)
		return fmt.Errorf("открытие транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO tasks
				(id, title, description, is_recurring, is_completed, due_date,
				 start_time, end_time, time_tracked_seconds, recurrence_type, recurrence_group_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				RETURNING created_at`

	batch := &pgx.Batch{}
	for _, t := range tasks {
		batch.Queue(query,
			t.ID,
			t.Title,
			t.Description,
			t.IsRecurring,
			t.IsCompleted,
			t.DueDate,
			t.StartTime,
			t.EndTime,
			t.TimeTrackedSeconds,
			t.RecurrenceType,
			t.RecurrenceGroupID,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for _, t := range tasks {
		if err := results.QueryRow().Scan(&t.CreatedAt); err != nil {
			results.Close()
			logger.Error("Repository: Не удалось вставить серию задач", err,
				zap.Int("count", len(tasks)),
				zap.Duration("ms", time.Since(start)))
			return fmt.Errorf("вставка серии: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("завершение batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Не удалось зафиксировать серию задач", err)
		return fmt.Errorf("фиксация транзакции: %w", err)
	}

	if time.Since(start) > time.Millisecond*50+time.Millisecond*time.Duration(len(tasks)) {
		logger.Warn("Repository: Медленная вставка серии", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return t, nil
}

func (s *Storage) GetAll(ctx context.Context) ([]*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY due_date, created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return tasks, nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				is_completed = $3,
				time_tracked_seconds = $4
			WHERE id = $5
			RETURNING id`

	var id uuid.UUID
	err := s.pool.QueryRow(ctx, query,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.IsCompleted,
		taskToUpdate.TimeTrackedSeconds,
		taskToUpdate.ID,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	query := `DELETE FROM tasks WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// DeleteFutureInGroup удаляет экземпляр и все последующие в его серии.
func (s *Storage) DeleteFutureInGroup(ctx context.Context, groupID uuid.UUID, from time.Time) (int64, error) {
	start := time.Now()

	query := `DELETE FROM tasks
				WHERE recurrence_group_id = $1 AND due_date >= $2`

	tag, err := s.pool.Exec(ctx, query, groupID, from)
	if err != nil {
		logger.Error("Repository: Не удалось удалить серию задач", err,
			zap.String("group_id", groupID.String()),
			zap.Duration("ms", time.Since(start)))
		return 0, fmt.Errorf("удаление серии: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return tag.RowsAffected(), nil
}

// GetSeriesTails возвращает последний экземпляр каждой повторяющейся серии,
// у которой хвост попадает в окно [from, before): серия ещё жива, но скоро
// исчерпает материализованный горизонт.
func (s *Storage) GetSeriesTails(ctx context.Context, from, before time.Time, limit int) ([]*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM (
				SELECT DISTINCT ON (recurrence_group_id) ` + taskColumns + `
				FROM tasks
				WHERE recurrence_group_id IS NOT NULL
				ORDER BY recurrence_group_id, due_date DESC
			) tails
			WHERE due_date >= $1 AND due_date < $2
			LIMIT $3`

	rows, err := s.pool.Query(ctx, query, from, before, limit)
	if err != nil {
		logger.Error("Repository: Не удалось получить хвосты серий", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение хвостов серий: %w", err)
	}
	defer rows.Close()

	tails := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		tails = append(tails, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return tails, nil
}
