package entities

import (
	"encoding/json"
	"time"
)

// LogEntry — одна запись журнала статусов или коммуникаций.
// Журналы хранятся в JSONB как упорядоченные списки, никакой склейки строк.
type LogEntry struct {
	At    string `json:"at"`
	Value string `json:"value"`
}

func NewLogEntry(at time.Time, value string) LogEntry {
	return LogEntry{At: at.Format("2006-01-02 15:04:05"), Value: value}
}

// MarshalAppend возвращает JSON-массив из одной записи — то, что
// дописывается к journal-колонке оператором ||.
func (e LogEntry) MarshalAppend() ([]byte, error) {
	return json.Marshal([]LogEntry{e})
}

type Order struct {
	ID             int64
	Driver         string
	OrderName      string
	CustomerName   string
	CustomerPhone  string
	Address        string
	Tags           string
	Fulfillment    string
	OrderState     string
	Store          string
	DeliveryStatus string
	Note           string
	ScheduledTime  string
	ScanDate       time.Time
	CashAmount     float64
	DriverFee      float64
	PayoutID       *string
	StatusLog      []LogEntry
	CommLog        []LogEntry
	CreatedAt      time.Time
}

// StatusMutation описывает частичное обновление строки заказа при смене
// статуса. nil-поля не трогаются.
type StatusMutation struct {
	NewStatus      *string
	StatusLogEntry *LogEntry
	Note           *string
	ScheduledTime  *string
	CashAmount     *float64
	CommLogEntry   *LogEntry
}

// TrendPoint — количество доставленных заказов за день.
type TrendPoint struct {
	Date      time.Time
	Delivered int
}
