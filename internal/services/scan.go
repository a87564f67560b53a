package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"delivery-system/internal/dto"
	"delivery-system/internal/entities"
	"delivery-system/internal/integrations/shopify"
	"delivery-system/internal/repositories"
	"delivery-system/pkg/config"
	"delivery-system/pkg/constants"
	apperrors "delivery-system/pkg/errors"
)

// Теги, которые показываются курьеру крупно на экране сканирования.
// Проверка по вхождению подстроки, порядок приоритета фиксирован.
var displayTags = []string{"big", "k", "12livery", "12livrey", "fast", "oscario", "sand"}

type ScanService struct {
	orderRepository repositories.OrderRepositoryInterface
	cacheRepository repositories.CacheRepositoryInterface
	stores          []shopify.ClientInterface
	cfg             *config.Config
	logger          *zap.Logger
	now             func() time.Time
}

func NewScanService(
	orderRepository repositories.OrderRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	stores []shopify.ClientInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *ScanService {
	return &ScanService{
		orderRepository: orderRepository,
		cacheRepository: cacheRepository,
		stores:          stores,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// DeriveOrderNumber собирает номер заказа из штрих-кода: все цифры
// подряд с префиксом "#". Код без цифр отклоняется.
func DeriveOrderNumber(barcode string) (string, error) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(barcode) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := "#" + digits.String()
	if len(number) <= 1 {
		return "", apperrors.ErrInvalidBarcode
	}
	return number, nil
}

// CalculateDriverFee возвращает тариф курьера: сниженный для обменов
// (маркер "ch" в строке тегов), обычный для всего остального.
func CalculateDriverFee(tags string, fees config.FeesConfig) float64 {
	if strings.Contains(strings.ToLower(tags), "ch") {
		return fees.Exchange
	}
	return fees.Normal
}

// PrimaryDisplayTag выбирает первый подходящий тег для экрана курьера.
func PrimaryDisplayTag(tags string) string {
	l := strings.ToLower(tags)
	for _, tag := range displayTags {
		if strings.Contains(l, tag) {
			return tag
		}
	}
	return ""
}

// Scan обрабатывает один штрих-код: разрешает номер заказа, отсекает
// повторные сканирования, обогащает заказ данными магазинов и
// записывает новую строку со статусом «Dispatched». Строка создается
// даже когда ни один магазин заказ не нашел.
func (s *ScanService) Scan(ctx context.Context, driver string, payload dto.ScanDTO) (*dto.ScanResultDTO, error) {
	orderNumber, err := DeriveOrderNumber(payload.Barcode)
	if err != nil {
		return nil, err
	}

	existing, err := s.orderRepository.FindByName(ctx, driver, orderNumber)
	if err == nil {
		return &dto.ScanResultDTO{
			Result:         constants.ScanResultAlreadyScanned,
			Order:          orderNumber,
			Tag:            PrimaryDisplayTag(existing.Tags),
			DeliveryStatus: existing.DeliveryStatus,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	chosen, storeName := s.lookupOrder(ctx, orderNumber)

	now := s.now()
	order := &entities.Order{
		Driver:         driver,
		OrderName:      orderNumber,
		OrderState:     "open",
		Store:          storeName,
		DeliveryStatus: constants.StatusDispatched,
		ScanDate:       now,
		CreatedAt:      now,
		StatusLog:      []entities.LogEntry{entities.NewLogEntry(now, constants.StatusDispatched)},
		CommLog:        []entities.LogEntry{},
	}

	resultMsg := constants.ScanResultNotFound
	if chosen != nil {
		order.Tags = chosen.Tags
		if chosen.FulfillmentStatus != nil {
			order.Fulfillment = *chosen.FulfillmentStatus
		}
		switch {
		case chosen.CancelledAt != nil:
			resultMsg = constants.ScanResultCancelled
			order.OrderState = "closed"
		case order.Fulfillment != "fulfilled":
			resultMsg = constants.ScanResultUnfulfilled
		default:
			resultMsg = constants.ScanResultOK
		}
		order.CashAmount = parseMoney(chosen.TotalOutstanding, chosen.TotalPrice)
		if sa := chosen.ShippingAddress; sa != nil {
			order.CustomerName = sa.Name
			if sa.Phone != nil {
				order.CustomerPhone = *sa.Phone
			}
			order.Address = joinAddress(sa)
		}
	}
	order.DriverFee = CalculateDriverFee(order.Tags, s.cfg.Fees)

	if err := s.orderRepository.Create(ctx, order); err != nil {
		s.logger.Error("ошибка при сохранении отсканированного заказа",
			zap.String("driver", driver),
			zap.String("order", orderNumber),
			zap.Error(err),
		)
		return nil, err
	}

	s.invalidate(ctx, driver)

	return &dto.ScanResultDTO{
		Result:         resultMsg,
		Order:          orderNumber,
		Tag:            PrimaryDisplayTag(order.Tags),
		DeliveryStatus: constants.StatusDispatched,
	}, nil
}

// lookupOrder опрашивает все магазины и выбирает самый свежий заказ,
// созданный в пределах окна поиска. Ошибка одного магазина не
// останавливает опрос остальных.
func (s *ScanService) lookupOrder(ctx context.Context, orderNumber string) (*shopify.OrderDTO, string) {
	windowStart := s.now().UTC().AddDate(0, 0, -constants.EnrichmentLookbackDays)

	var chosen *shopify.OrderDTO
	var chosenStore string
	var chosenCreated time.Time

	for _, store := range s.stores {
		orders, err := store.FindOrders(ctx, orderNumber, windowStart)
		if err != nil {
			s.logger.Warn("магазин не ответил, пропускаем",
				zap.String("store", store.Name()),
				zap.Error(err),
			)
			continue
		}
		for i := range orders {
			createdAt, err := time.Parse(time.RFC3339, orders[i].CreatedAt)
			if err != nil {
				continue
			}
			if createdAt.Before(windowStart) {
				continue
			}
			if chosen == nil || createdAt.After(chosenCreated) {
				chosen = &orders[i]
				chosenStore = store.Name()
				chosenCreated = createdAt
			}
		}
	}
	return chosen, chosenStore
}

func (s *ScanService) invalidate(ctx context.Context, driver string) {
	err := s.cacheRepository.Del(ctx,
		fmt.Sprintf(constants.CacheKeyOrders, driver),
		fmt.Sprintf(constants.CacheKeyPayouts, driver),
	)
	if err != nil {
		s.logger.Warn("не удалось сбросить кеш водителя", zap.String("driver", driver), zap.Error(err))
	}
}

func parseMoney(values ...string) float64 {
	for _, v := range values {
		if v == "" {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

func joinAddress(sa *shopify.AddressDTO) string {
	parts := make([]string, 0, 4)
	for _, p := range []*string{sa.Address1, sa.Address2, sa.City, sa.Province} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, ", ")
}
