package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID                 uuid.UUID      `json:"id" db:"id"`
	Title              string         `json:"title" db:"title"`
	Description        string         `json:"description" db:"description"`
	IsRecurring        bool           `json:"is_recurring" db:"is_recurring"`
	IsCompleted        bool           `json:"is_completed" db:"is_completed"`
	DueDate            time.Time      `json:"due_date" db:"due_date"`
	StartTime          *time.Time     `json:"start_time,omitempty" db:"start_time"`
	EndTime            *time.Time     `json:"end_time,omitempty" db:"end_time"`
	TimeTrackedSeconds int            `json:"time_tracked_seconds" db:"time_tracked_seconds"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	RecurrenceType     RecurrenceType `json:"recurrence_type,omitempty" db:"recurrence_type"`
	RecurrenceGroupID  *uuid.UUID     `json:"recurrence_group_id,omitempty" db:"recurrence_group_id"`
}

type RecurrenceType string

const RecurrenceNone RecurrenceType = ""
const RecurrenceDaily RecurrenceType = "daily"
const RecurrenceWeekly RecurrenceType = "weekly"

func (r RecurrenceType) Valid() bool {
	return r == RecurrenceDaily || r == RecurrenceWeekly
}

// StepDays возвращает шаг серии в днях.
func (r RecurrenceType) StepDays() int {
	switch r {
	case RecurrenceDaily:
		return 1
	case RecurrenceWeekly:
		return 7
	default:
		return 0
	}
}
