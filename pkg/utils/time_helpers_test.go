package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	cases := []string{
		"2025-03-10 15:04:05",
		"2025-03-10 15:04:05.123456",
		"2025-03-10T15:04:05",
		"2025-03-10T15:04",
	}
	for _, c := range cases {
		got, err := ParseTimestamp(c)
		require.NoError(t, err, c)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.March, got.Month())
	}

	// Дробные секунды любой длины, не только ровно шесть знаков:
	// time.Parse принимает дробную часть и без нее в макете.
	got, err := ParseTimestamp("2025-03-10 12:30:00.5")
	require.NoError(t, err)
	assert.Equal(t, 500000000, got.Nanosecond())

	got, err = ParseTimestamp("2025-03-10T12:30:00.125")
	require.NoError(t, err)
	assert.Equal(t, 125000000, got.Nanosecond())

	// Хвостовое буквенное обозначение зоны отбрасывается.
	got, err = ParseTimestamp("2025-03-10 15:04:05 GMT")
	require.NoError(t, err)
	assert.Equal(t, 15, got.Hour())

	_, err = ParseTimestamp("не дата")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", FormatDate(got))

	_, err = ParseDate("10.03.2025")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2025, 3, 10, 18, 45, 12, 999, time.UTC)
	got := StartOfDay(at)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)
}
