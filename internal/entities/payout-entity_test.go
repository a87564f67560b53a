package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPayoutID(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 5, 30, 0, time.UTC)
	assert.Equal(t, "PO-20250310-0905", NewPayoutID(at))
}

func TestUniquePayoutID(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 5, 30, 0, time.UTC)
	taken := map[string]bool{}
	lookup := func(id string) bool { return taken[id] }

	assert.Equal(t, "PO-20250310-0905", UniquePayoutID(at, lookup))

	// Базовый токен занят закрытой выплатой той же минуты.
	taken["PO-20250310-0905"] = true
	assert.Equal(t, "PO-20250310-0905-2", UniquePayoutID(at, lookup))

	taken["PO-20250310-0905-2"] = true
	assert.Equal(t, "PO-20250310-0905-3", UniquePayoutID(at, lookup))
}

func TestOrderListOps(t *testing.T) {
	assert.Equal(t, []string{"#1", "#2"}, SplitOrderList("#1, #2"))
	assert.Equal(t, []string{"#1"}, SplitOrderList(" #1 ,, "))
	assert.Empty(t, SplitOrderList(""))

	assert.Equal(t, "#1", AppendOrder("", "#1"))
	assert.Equal(t, "#1, #2", AppendOrder("#1", "#2"))

	out, found := RemoveOrder("#1, #2, #3", "#2")
	assert.True(t, found)
	assert.Equal(t, "#1, #3", out)

	out, found = RemoveOrder("#1", "#404")
	assert.False(t, found)
	assert.Equal(t, "#1", out)

	out, found = RemoveOrder("#1", "#1")
	assert.True(t, found)
	assert.Equal(t, "", out)
}

func TestLogEntryMarshalAppend(t *testing.T) {
	entry := NewLogEntry(time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC), "Livré")
	b, err := entry.MarshalAppend()
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"at":"2025-03-10 15:04:05","value":"Livré"}]`, string(b))
}
