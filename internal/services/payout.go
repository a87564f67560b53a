package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"delivery-system/internal/dto"
	"delivery-system/internal/entities"
	"delivery-system/internal/repositories"
	"delivery-system/pkg/config"
	"delivery-system/pkg/constants"
	"delivery-system/pkg/utils"
)

type PayoutService struct {
	payoutRepository repositories.PayoutRepositoryInterface
	orderRepository  repositories.OrderRepositoryInterface
	cacheRepository  repositories.CacheRepositoryInterface
	cfg              *config.Config
	logger           *zap.Logger
	now              func() time.Time
}

func NewPayoutService(
	payoutRepository repositories.PayoutRepositoryInterface,
	orderRepository repositories.OrderRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *PayoutService {
	return &PayoutService{
		payoutRepository: payoutRepository,
		orderRepository:  orderRepository,
		cacheRepository:  cacheRepository,
		cfg:              cfg,
		logger:           logger,
		now:              time.Now,
	}
}

// ListPayouts возвращает выплаты водителя, новые первыми, с раскрытыми
// деталями заказов-участников. Заказ, уже ушедший в архив, показывается
// с нулевыми суммами.
func (s *PayoutService) ListPayouts(ctx context.Context, driver string) ([]dto.PayoutDTO, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyPayouts, driver)
	if cached, err := s.cacheRepository.Get(ctx, cacheKey); err == nil {
		var out []dto.PayoutDTO
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
		s.logger.Warn("битое значение в кеше выплат, перечитываем", zap.String("driver", driver))
	}

	payouts, err := s.payoutRepository.GetPayoutsByDriver(ctx, driver)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepository.GetByDriver(ctx, driver, nil, nil)
	if err != nil {
		return nil, err
	}
	lookup := make(map[string]*entities.Order, len(orders))
	for i := range orders {
		lookup[orders[i].OrderName] = &orders[i]
	}

	out := make([]dto.PayoutDTO, 0, len(payouts))
	for i := range payouts {
		out = append(out, toPayoutDTO(&payouts[i], lookup))
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := s.cacheRepository.Set(ctx, cacheKey, string(raw), s.cfg.Cache.TTL); err != nil {
			s.logger.Warn("не удалось положить выплаты в кеш", zap.String("driver", driver), zap.Error(err))
		}
	}
	return out, nil
}

// MarkPaid закрывает выплату. Дальше ее итоги не меняются.
func (s *PayoutService) MarkPaid(ctx context.Context, driver string, payoutID string) error {
	if err := s.payoutRepository.MarkPaid(ctx, driver, payoutID, s.now()); err != nil {
		return err
	}

	err := s.cacheRepository.Del(ctx,
		fmt.Sprintf(constants.CacheKeyOrders, driver),
		fmt.Sprintf(constants.CacheKeyPayouts, driver),
	)
	if err != nil {
		s.logger.Warn("не удалось сбросить кеш водителя", zap.String("driver", driver), zap.Error(err))
	}
	return nil
}

func toPayoutDTO(p *entities.Payout, lookup map[string]*entities.Order) dto.PayoutDTO {
	members := entities.SplitOrderList(p.Orders)
	details := make([]dto.PayoutOrderDetailDTO, 0, len(members))
	for _, name := range members {
		detail := dto.PayoutOrderDetailDTO{Name: name}
		if o, ok := lookup[name]; ok {
			detail.CashAmount = o.CashAmount
			detail.DriverFee = o.DriverFee
		}
		details = append(details, detail)
	}

	datePaid := ""
	if p.DatePaid != nil {
		datePaid = utils.FormatTimestamp(*p.DatePaid)
	}
	return dto.PayoutDTO{
		PayoutID:     p.PayoutID,
		DateCreated:  utils.FormatTimestamp(p.DateCreated),
		Orders:       p.Orders,
		TotalCash:    p.TotalCash,
		TotalFees:    p.TotalFees,
		TotalPayout:  p.TotalPayout,
		Status:       p.Status,
		DatePaid:     datePaid,
		OrderDetails: details,
	}
}
