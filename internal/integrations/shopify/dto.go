package shopify

// OrdersResponse — обертка ответа Shopify Admin API.
type OrdersResponse struct {
	Orders []OrderDTO `json:"orders"`
}

// OrderDTO — структура для парсинга одного заказа из их JSON-ответа.
// Денежные поля приходят строками.
type OrderDTO struct {
	Name              string      `json:"name"`
	CreatedAt         string      `json:"created_at"`
	Tags              string      `json:"tags"`
	FulfillmentStatus *string     `json:"fulfillment_status"`
	CancelledAt       *string     `json:"cancelled_at"`
	TotalOutstanding  string      `json:"total_outstanding"`
	TotalPrice        string      `json:"total_price"`
	ShippingAddress   *AddressDTO `json:"shipping_address"`
}

// AddressDTO — адрес доставки заказа.
type AddressDTO struct {
	Name     string  `json:"name"`
	Phone    *string `json:"phone"`
	Address1 *string `json:"address1"`
	Address2 *string `json:"address2"`
	City     *string `json:"city"`
	Province *string `json:"province"`
}
