package constants

// --- СТАТУСЫ ДОСТАВКИ (фиксированный набор из десяти значений) ---
const (
	StatusDispatched  = "Dispatched"
	StatusDelivered   = "Livré"
	StatusInProgress  = "En cours"
	StatusNoAnswer1   = "Pas de réponse 1"
	StatusNoAnswer2   = "Pas de réponse 2"
	StatusNoAnswer3   = "Pas de réponse 3"
	StatusCancelled   = "Annulé"
	StatusRefused     = "Refusé"
	StatusRescheduled = "Rescheduled"
	StatusReturned    = "Returned"
)

var DeliveryStatuses = []string{
	StatusDispatched, StatusDelivered, StatusInProgress,
	StatusNoAnswer1, StatusNoAnswer2, StatusNoAnswer3,
	StatusCancelled, StatusRefused, StatusRescheduled, StatusReturned,
}

// Терминальные статусы: заказ больше не показывается в активном списке.
var CompletedStatuses = []string{
	StatusDelivered, StatusCancelled, StatusRefused, StatusReturned,
}

// Статусы, попадающие в корзину "возвраты" в статистике.
var ReturnedStatuses = []string{
	StatusReturned, StatusCancelled, StatusRefused,
}

func IsDeliveryStatus(s string) bool {
	for _, v := range DeliveryStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsCompletedStatus(s string) bool {
	for _, v := range CompletedStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsReturnedStatus(s string) bool {
	for _, v := range ReturnedStatuses {
		if v == s {
			return true
		}
	}
	return false
}

//============== СТАТУСЫ ВЫПЛАТ ==============

const (
	PayoutStatusPending = "pending"
	PayoutStatusPaid    = "paid"
)

//============== РЕЗУЛЬТАТЫ СКАНИРОВАНИЯ ==============

const (
	ScanResultOK             = "✅ OK"
	ScanResultCancelled      = "⚠️ Cancelled"
	ScanResultUnfulfilled    = "❌ Unfulfilled"
	ScanResultNotFound       = "❌ Not found"
	ScanResultAlreadyScanned = "⚠️ Already scanned"
)

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis/кеше.
const (
	// Активные заказы водителя.
	// Формат: orders:<driver> -> JSON []ActiveOrderDTO
	CacheKeyOrders = "orders:%s"

	// Выплаты водителя.
	// Формат: payouts:<driver> -> JSON []PayoutDTO
	CacheKeyPayouts = "payouts:%s"
)

//============== ПРОЧЕЕ ==============

// Окно поиска заказа в магазинах при сканировании.
const EnrichmentLookbackDays = 50

// Заказ считается срочным, если до назначенного времени осталось не
// больше часа.
const UrgencyWindowSeconds = 3600
