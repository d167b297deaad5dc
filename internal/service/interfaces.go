package service

import (
	"context"
	"time"

	"personalPlanner/internal/models/event"
	"personalPlanner/internal/models/journal"
	"personalPlanner/internal/models/task"

	"github.com/google/uuid"
)

type TaskRepository interface {
	Create(context.Context, *task.Task) error
	CreateSeries(context.Context, []*task.Task) error
	GetAll(context.Context) ([]*task.Task, error)
	GetByID(context.Context, uuid.UUID) (*task.Task, error)
	Update(context.Context, *task.Task) error
	Delete(context.Context, uuid.UUID) error
	DeleteFutureInGroup(ctx context.Context, groupID uuid.UUID, from time.Time) (int64, error)
	GetSeriesTails(ctx context.Context, from, before time.Time, limit int) ([]*task.Task, error)
	HealthCheck(context.Context) error
}

type EventRepository interface {
	Create(context.Context, *event.Event) error
	GetAll(context.Context) ([]*event.Event, error)
	GetByID(context.Context, uuid.UUID) (*event.Event, error)
	Update(context.Context, *event.Event) error
	Delete(context.Context, uuid.UUID) error
}

type JournalRepository interface {
	Create(context.Context, *journal.Entry) error
	GetAll(context.Context) ([]*journal.Entry, error)
	GetByID(context.Context, uuid.UUID) (*journal.Entry, error)
	Update(context.Context, *journal.Entry) error
	Delete(context.Context, uuid.UUID) error
}
