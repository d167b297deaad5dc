package event

import "time"

type EventOption func(*Event)

func WithTitle(title string) EventOption {
	if title == "" {
		return nil
	}
	return func(event *Event) {
		event.Title = title
	}
}

func WithDescription(description string) EventOption {
	return func(event *Event) {
		event.Description = description
	}
}

func WithStartTime(startTime time.Time) EventOption {
	if startTime.IsZero() {
		return nil
	}
	return func(event *Event) {
		event.StartTime = startTime
	}
}

// WithEndTime с nil очищает end_time: у события может не быть конца.
func WithEndTime(endTime *time.Time) EventOption {
	return func(event *Event) {
		event.EndTime = endTime
	}
}
