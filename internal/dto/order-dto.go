package dto

import "github.com/aarondl/null/v8"

type LogEntryDTO struct {
	At    string `json:"at"`
	Value string `json:"value"`
}

type ActiveOrderDTO struct {
	Timestamp      string        `json:"timestamp"`
	OrderName      string        `json:"orderName"`
	CustomerName   string        `json:"customerName"`
	CustomerPhone  string        `json:"customerPhone"`
	Address        string        `json:"address"`
	Tags           string        `json:"tags"`
	DeliveryStatus string        `json:"deliveryStatus"`
	Notes          string        `json:"notes"`
	ScheduledTime  string        `json:"scheduledTime"`
	ScanDate       string        `json:"scanDate"`
	CashAmount     float64       `json:"cashAmount"`
	DriverFee      float64       `json:"driverFee"`
	PayoutID       string        `json:"payoutId"`
	StatusLog      []LogEntryDTO `json:"statusLog"`
	CommLog        []LogEntryDTO `json:"commLog"`
	Urgent         bool          `json:"urgent"`
}

type StatusUpdateDTO struct {
	OrderName     string       `json:"order_name" validate:"required"`
	NewStatus     null.String  `json:"new_status" validate:"omitempty,delivery_status"`
	Note          null.String  `json:"note"`
	CashAmount    null.Float64 `json:"cash_amount"`
	ScheduledTime null.String  `json:"scheduled_time"`
	CommLog       null.String  `json:"comm_log"`
}
