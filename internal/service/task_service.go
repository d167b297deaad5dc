package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personalPlanner/internal/logger"
	"personalPlanner/internal/models/task"
	rep "personalPlanner/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Горизонт материализации серии: примерно три месяца вперёд.
const DailyHorizon = 90
const WeeklyHorizon = 12

func horizonFor(recurrence task.RecurrenceType) int {
	switch recurrence {
	case task.RecurrenceDaily:
		return DailyHorizon
	case task.RecurrenceWeekly:
		return WeeklyHorizon
	default:
		return 0
	}
}

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) TaskService {
	return TaskService{
		repo: repo,
	}
}

type CreateTaskParams struct {
	Title          string
	Description    string
	DueDate        time.Time
	StartTime      *time.Time
	EndTime        *time.Time
	IsRecurring    bool
	RecurrenceType task.RecurrenceType
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// CreateTask создаёт задачу; для повторяющейся задачи материализует
// всю серию будущих экземпляров с общим recurrence_group_id.
func (s *TaskService) CreateTask(ctx context.Context, params CreateTaskParams) (*task.Task, error) {
	if params.Title == "" {
		return nil, NewValidationError("title", "не может быть пустым")
	}
	if params.DueDate.IsZero() {
		return nil, NewValidationError("due_date", "обязательное поле")
	}
	if params.IsRecurring && !params.RecurrenceType.Valid() {
		return nil, NewValidationError("recurrence_type", "допустимы только daily и weekly")
	}

	base := &task.Task{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
	}

	if !params.IsRecurring {
		if err := s.repo.Create(ctx, base); err != nil {
			return nil, fmt.Errorf("создание задачи: %w", err)
		}
		return base, nil
	}

	groupID := uuid.New()
	base.IsRecurring = true
	base.RecurrenceType = params.RecurrenceType
	base.RecurrenceGroupID = &groupID

	series := append([]*task.Task{base}, instancesAfter(base, horizonFor(params.RecurrenceType))...)
	if err := s.repo.CreateSeries(ctx, series); err != nil {
		return nil, fmt.Errorf("создание серии: %w", err)
	}

	logger.Info("Service: Создана повторяющаяся серия",
		zap.String("group_id", groupID.String()),
		zap.String("recurrence_type", string(params.RecurrenceType)),
		zap.Int("instances", len(series)))
	return base, nil
}

// instancesAfter порождает count будущих экземпляров серии после tail.
// Экземпляры наследуют всё, кроме дат выполнения и накопленного времени.
func instancesAfter(tail *task.Task, count int) []*task.Task {
	step := tail.RecurrenceType.StepDays()
	instances := make([]*task.Task, 0, count)
	for i := 1; i <= count; i++ {
		instances = append(instances, &task.Task{
			ID:                uuid.New(),
			Title:             tail.Title,
			Description:       tail.Description,
			IsRecurring:       true,
			DueDate:           tail.DueDate.AddDate(0, 0, step*i),
			StartTime:         tail.StartTime,
			EndTime:           tail.EndTime,
			RecurrenceType:    tail.RecurrenceType,
			RecurrenceGroupID: tail.RecurrenceGroupID,
		})
	}
	return instances
}

func (s *TaskService) GetTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound(ResourceTask, id.String())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

// UpdateTask обновляет изменяемые поля одного экземпляра.
// Поля повторяемости после создания неизменны.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	t, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceTask, id.String())
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return t, nil
}

// DeleteTask удаляет один экземпляр либо, при allFuture, экземпляр и все
// последующие в его серии. Для неповторяющихся задач allFuture игнорируется.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID, allFuture bool) error {
	t, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return err
	}

	if allFuture && t.RecurrenceGroupID != nil {
		deleted, err := s.repo.DeleteFutureInGroup(ctx, *t.RecurrenceGroupID, t.DueDate)
		if err != nil {
			return fmt.Errorf("удаление серии: %w", err)
		}
		logger.Info("Service: Удалён хвост серии",
			zap.String("group_id", t.RecurrenceGroupID.String()),
			zap.Int64("deleted", deleted))
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(ResourceTask, id.String())
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}
	return nil
}

// ExtendDueSeries дополняет серии, чей последний материализованный экземпляр
// попадает в окно [сейчас, cutoff): каждой такой серии достраивается полный
// горизонт. Возвращает число расширенных серий.
func (s *TaskService) ExtendDueSeries(ctx context.Context, cutoff time.Time, batch int) (int, error) {
	tails, err := s.repo.GetSeriesTails(ctx, time.Now(), cutoff, batch)
	if err != nil {
		return 0, fmt.Errorf("получение хвостов серий: %w", err)
	}

	extended := 0
	for _, tail := range tails {
		if !tail.RecurrenceType.Valid() {
			logger.Warn("Service: Серия с неизвестным типом повторения",
				zap.String("task_id", tail.ID.String()),
				zap.String("recurrence_type", string(tail.RecurrenceType)))
			continue
		}

		instances := instancesAfter(tail, horizonFor(tail.RecurrenceType))
		if err := s.repo.CreateSeries(ctx, instances); err != nil {
			return extended, fmt.Errorf("продление серии: %w", err)
		}
		extended++
	}
	return extended, nil
}
