package handlers

import (
	"encoding/json"
	"time"

	"personalPlanner/internal/models/task"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	DueDate        string `json:"due_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	IsRecurring    bool   `json:"is_recurring"`
	RecurrenceType string `json:"recurrence_type"`
}

type UpdateTaskRequest struct {
	Title              *string `json:"title,omitempty"`
	Description        *string `json:"description,omitempty"`
	IsCompleted        *bool   `json:"is_completed,omitempty"`
	TimeTrackedSeconds *int    `json:"time_tracked_seconds,omitempty"`
}

// TaskResponse отдаёт due_date как дату без времени, в формате оригинального API.
type TaskResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	IsRecurring        bool       `json:"is_recurring"`
	RecurrenceType     string     `json:"recurrence_type,omitempty"`
	IsCompleted        bool       `json:"is_completed"`
	DueDate            string     `json:"due_date"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	TimeTrackedSeconds int        `json:"time_tracked_seconds"`
	CreatedAt          time.Time  `json:"created_at"`
	RecurrenceGroupID  *uuid.UUID `json:"recurrence_group_id"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		IsRecurring:        t.IsRecurring,
		RecurrenceType:     string(t.RecurrenceType),
		IsCompleted:        t.IsCompleted,
		DueDate:            t.DueDate.Format(dateLayout),
		StartTime:          t.StartTime,
		EndTime:            t.EndTime,
		TimeTrackedSeconds: t.TimeTrackedSeconds,
		CreatedAt:          t.CreatedAt,
		RecurrenceGroupID:  t.RecurrenceGroupID,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// UpdateEventRequest: end_time хранится как сырой JSON, чтобы отличать
// отсутствие ключа от явного null (null очищает поле).
type UpdateEventRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	StartTime   *string         `json:"start_time,omitempty"`
	EndTime     json.RawMessage `json:"end_time,omitempty"`
}

type CreateJournalRequest struct {
	EntryType string         `json:"entry_type"`
	Content   map[string]any `json:"content"`
	Timestamp string         `json:"timestamp"`
}

type UpdateJournalRequest struct {
	Content   map[string]any `json:"content,omitempty"`
	Timestamp *string        `json:"timestamp,omitempty"`
}
