package dto

type ScanDTO struct {
	Barcode string `json:"barcode" validate:"required"`
}

type ScanResultDTO struct {
	Result         string `json:"result"`
	Order          string `json:"order"`
	Tag            string `json:"tag"`
	DeliveryStatus string `json:"deliveryStatus"`
}
