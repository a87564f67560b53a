package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"delivery-system/internal/dto"
	"delivery-system/internal/entities"
	"delivery-system/internal/repositories"
	"delivery-system/pkg/config"
	"delivery-system/pkg/constants"
	apperrors "delivery-system/pkg/errors"
	"delivery-system/pkg/utils"
)

type StatsService struct {
	orderRepository repositories.OrderRepositoryInterface
	cfg             *config.Config
	logger          *zap.Logger
	now             func() time.Time
}

func NewStatsService(
	orderRepository repositories.OrderRepositoryInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		orderRepository: orderRepository,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// resolveRange превращает параметры периода в границы дат: явные
// start/end, скользящее окно в days дней (включая сегодня), либо
// вообще без границ.
func (s *StatsService) resolveRange(rng dto.StatsRangeDTO) (start, end *time.Time, err error) {
	if rng.Start != "" {
		t, perr := utils.ParseDate(rng.Start)
		if perr != nil {
			return nil, nil, apperrors.NewInvalidInputError("некорректная дата начала периода: %s", rng.Start)
		}
		start = &t
	} else if rng.Days > 0 {
		t := utils.StartOfDay(s.now()).AddDate(0, 0, -(rng.Days - 1))
		start = &t
	}

	if rng.End != "" {
		t, perr := utils.ParseDate(rng.End)
		if perr != nil {
			return nil, nil, apperrors.NewInvalidInputError("некорректная дата конца периода: %s", rng.End)
		}
		end = &t
	}
	return start, end, nil
}

// ComputeStats агрегирует строки водителя, чья дата сканирования
// попадает в период. Доставленные и возвраты считаются раздельно,
// суммы собранного и тарифов копятся только по доставленным.
func (s *StatsService) ComputeStats(ctx context.Context, driver string, rng dto.StatsRangeDTO) (*dto.StatsDTO, error) {
	start, end, err := s.resolveRange(rng)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepository.GetByDriver(ctx, driver, start, end)
	if err != nil {
		return nil, err
	}
	return computeStats(orders), nil
}

// AdminStats считает ту же сводку отдельно по каждому водителю.
func (s *StatsService) AdminStats(ctx context.Context, rng dto.StatsRangeDTO) (map[string]*dto.StatsDTO, error) {
	start, end, err := s.resolveRange(rng)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*dto.StatsDTO, len(s.cfg.Drivers))
	for _, driver := range s.cfg.Drivers {
		orders, err := s.orderRepository.GetByDriver(ctx, driver, start, end)
		if err != nil {
			return nil, err
		}
		out[driver] = computeStats(orders)
	}
	return out, nil
}

// Trends возвращает количество доставленных заказов по дням по всем
// водителям сразу. Конец периода по умолчанию — сегодня.
func (s *StatsService) Trends(ctx context.Context, rng dto.StatsRangeDTO) ([]dto.TrendPointDTO, error) {
	start, end, err := s.resolveRange(rng)
	if err != nil {
		return nil, err
	}
	if end == nil {
		t := utils.StartOfDay(s.now())
		end = &t
	}

	points, err := s.orderRepository.DeliveredPerDay(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TrendPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.TrendPointDTO{
			Date:      utils.FormatDate(p.Date),
			Delivered: p.Delivered,
		})
	}
	return out, nil
}

// OrdersInRange собирает строки всех водителей за период — сырье для
// выгрузки отчета.
func (s *StatsService) OrdersInRange(ctx context.Context, rng dto.StatsRangeDTO) ([]entities.Order, error) {
	start, end, err := s.resolveRange(rng)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Order, 0)
	for _, driver := range s.cfg.Drivers {
		orders, err := s.orderRepository.GetByDriver(ctx, driver, start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, orders...)
	}
	return out, nil
}

// Search ищет заказы по всем водителям по номеру или телефону клиента.
func (s *StatsService) Search(ctx context.Context, query string) ([]dto.SearchResultDTO, error) {
	orders, err := s.orderRepository.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SearchResultDTO, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		out = append(out, dto.SearchResultDTO{
			Driver:         o.Driver,
			OrderName:      o.OrderName,
			CustomerName:   o.CustomerName,
			CustomerPhone:  o.CustomerPhone,
			DeliveryStatus: o.DeliveryStatus,
			CashAmount:     o.CashAmount,
			Address:        o.Address,
		})
	}
	return out, nil
}

func computeStats(orders []entities.Order) *dto.StatsDTO {
	stats := &dto.StatsDTO{}
	for i := range orders {
		o := &orders[i]
		stats.TotalOrders++
		switch {
		case o.DeliveryStatus == constants.StatusDelivered:
			stats.Delivered++
			stats.TotalCollect += o.CashAmount
			stats.TotalFees += o.DriverFee
		case constants.IsReturnedStatus(o.DeliveryStatus):
			stats.Returned++
			stats.CanceledAmount += o.CashAmount
		}
	}
	if stats.TotalOrders > 0 {
		stats.DeliveryRate = float64(stats.Delivered) / float64(stats.TotalOrders) * 100
	}
	return stats
}
