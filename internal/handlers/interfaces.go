package handlers

import (
	"context"

	"personalPlanner/internal/models/event"
	"personalPlanner/internal/models/journal"
	"personalPlanner/internal/models/task"
	"personalPlanner/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	HealthCheck(ctx context.Context) error
	CreateTask(ctx context.Context, params service.CreateTaskParams) (*task.Task, error)
	GetTasks(ctx context.Context) ([]*task.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, options ...task.TaskOption) (*task.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID, allFuture bool) error
}

type EventService interface {
	CreateEvent(ctx context.Context, params service.CreateEventParams) (*event.Event, error)
	GetEvents(ctx context.Context) ([]*event.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, options ...event.EventOption) (*event.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type JournalService interface {
	CreateEntry(ctx context.Context, params service.CreateEntryParams) (*journal.Entry, error)
	GetEntries(ctx context.Context) ([]*journal.Entry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, options ...journal.EntryOption) (*journal.Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}
