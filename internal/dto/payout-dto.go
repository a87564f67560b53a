package dto

type PayoutOrderDetailDTO struct {
	Name       string  `json:"name"`
	CashAmount float64 `json:"cashAmount"`
	DriverFee  float64 `json:"driverFee"`
}

type PayoutDTO struct {
	PayoutID     string                 `json:"payoutId"`
	DateCreated  string                 `json:"dateCreated"`
	Orders       string                 `json:"orders"`
	TotalCash    float64                `json:"totalCash"`
	TotalFees    float64                `json:"totalFees"`
	TotalPayout  float64                `json:"totalPayout"`
	Status       string                 `json:"status"`
	DatePaid     string                 `json:"datePaid"`
	OrderDetails []PayoutOrderDetailDTO `json:"orderDetails"`
}
