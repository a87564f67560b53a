package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"delivery-system/pkg/config"
)

const apiVersion = "2023-07"

// ClientInterface - контракт клиента одного магазина; нужен для подмены
// в тестах сервиса сканирования.
type ClientInterface interface {
	Name() string
	FindOrders(ctx context.Context, orderName string, createdAtMin time.Time) ([]OrderDTO, error)
}

// Provider - это "чистый фасад" для Shopify Admin API одного магазина.
type Provider struct {
	httpClient *http.Client
	store      config.ShopifyStore
	logger     *zap.Logger
}

// New - конструктор клиента магазина.
func New(store config.ShopifyStore, logger *zap.Logger) ClientInterface {
	return &Provider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		store:      store,
		logger:     logger.Named("shopify_" + store.Name),
	}
}

// Name - реализуем метод интерфейса.
func (p *Provider) Name() string {
	return p.store.Name
}

// FindOrders запрашивает у магазина заказы с данным именем, созданные не
// раньше createdAtMin. Пустой список — не ошибка: имени в этом магазине
// просто нет.
func (p *Provider) FindOrders(ctx context.Context, orderName string, createdAtMin time.Time) ([]OrderDTO, error) {
	query := url.Values{}
	query.Set("name", orderName)
	query.Set("status", "any")
	query.Set("created_at_min", createdAtMin.Format(time.RFC3339))

	endpoint := fmt.Sprintf("https://%s/admin/api/%s/orders.json?%s", p.store.Domain, apiVersion, query.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GET-запроса: %w", err)
	}
	req.SetBasicAuth(p.store.APIKey, p.store.Password)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения GET-запроса к магазину '%s': %w", p.store.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API магазина '%s' вернул статус: %s", p.store.Name, resp.Status)
	}

	rawData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа магазина '%s': %w", p.store.Name, err)
	}

	var parsed OrdersResponse
	if err := json.Unmarshal(rawData, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON магазина '%s': %w", p.store.Name, err)
	}

	p.logger.Debug("Ответ магазина получен",
		zap.String("order_name", orderName),
		zap.Int("count", len(parsed.Orders)),
	)
	return parsed.Orders, nil
}
