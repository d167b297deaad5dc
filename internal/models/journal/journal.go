package journal

import (
	"time"

	"github.com/google/uuid"
)

// Entry хранит произвольную запись дневника: еду, сон, настроение и т.п.
// Содержимое полуструктурировано и лежит в JSONB как есть.
type Entry struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	EntryType string         `json:"entry_type" db:"entry_type"`
	Content   map[string]any `json:"content" db:"content"`
	Timestamp time.Time      `json:"timestamp" db:"timestamp"`
}
