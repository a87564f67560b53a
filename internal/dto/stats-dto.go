package dto

type StatsDTO struct {
	TotalOrders    int     `json:"totalOrders"`
	Delivered      int     `json:"delivered"`
	Returned       int     `json:"returned"`
	TotalCollect   float64 `json:"totalCollect"`
	TotalFees      float64 `json:"totalFees"`
	DeliveryRate   float64 `json:"deliveryRate"`
	CanceledAmount float64 `json:"canceledAmount"`
}

type TrendPointDTO struct {
	Date      string `json:"date"`
	Delivered int    `json:"delivered"`
}

type SearchResultDTO struct {
	Driver         string  `json:"driver"`
	OrderName      string  `json:"orderName"`
	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	DeliveryStatus string  `json:"deliveryStatus"`
	CashAmount     float64 `json:"cashAmount"`
	Address        string  `json:"address"`
}

// StatsRangeDTO — разобранные параметры периода статистики: явные
// start/end, скользящее окно в days дней, либо без ограничений.
type StatsRangeDTO struct {
	Days  int
	Start string
	End   string
}
