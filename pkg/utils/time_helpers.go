package utils

import (
	"strings"
	"time"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp разбирает отметки времени в форматах, которые реально
// приходят от клиентов: с микросекундами, без них, ISO-вариант из
// date-time input. Хвостовое буквенное обозначение зоны отбрасывается.
func ParseTimestamp(val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	parts := strings.Fields(val)
	if len(parts) > 2 && isAlpha(parts[len(parts)-1]) {
		val = strings.Join(parts[:len(parts)-1], " ")
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, val)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ParseDate разбирает дату фильтра вида 2006-01-02.
func ParseDate(val string) (time.Time, error) {
	return time.Parse("2006-01-02", val)
}

func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfDay обнуляет время, оставляя дату в той же зоне.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
