package handlers

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate принимает дату и как "YYYY-MM-DD", и как полную метку ISO 8601
// (клиенты присылают оба варианта). Пустая строка - отсутствие значения.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := parsed.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный формат даты %q", raw)
	}
	return parsed, nil
}

func parseDateTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("неверный формат времени %q", raw)
	}
	return &parsed, nil
}
