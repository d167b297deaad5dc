package journal

import "time"

type EntryOption func(*Entry)

func WithContent(content map[string]any) EntryOption {
	if content == nil {
		return nil
	}
	return func(entry *Entry) {
		entry.Content = content
	}
}

func WithTimestamp(timestamp time.Time) EntryOption {
	if timestamp.IsZero() {
		return nil
	}
	return func(entry *Entry) {
		entry.Timestamp = timestamp
	}
}
