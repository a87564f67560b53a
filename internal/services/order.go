package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
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

type OrderService struct {
	orderRepository  repositories.OrderRepositoryInterface
	payoutRepository repositories.PayoutRepositoryInterface
	cacheRepository  repositories.CacheRepositoryInterface
	cfg              *config.Config
	logger           *zap.Logger
	now              func() time.Time
}

func NewOrderService(
	orderRepository repositories.OrderRepositoryInterface,
	payoutRepository repositories.PayoutRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepository:  orderRepository,
		payoutRepository: payoutRepository,
		cacheRepository:  cacheRepository,
		cfg:              cfg,
		logger:           logger,
		now:              time.Now,
	}
}

// ListActiveOrders возвращает незавершенные заказы водителя,
// отсортированные по эффективному времени: назначенное время, если оно
// есть и разбирается, иначе момент сканирования. Результат держится в
// кеше до первой мутации или истечения TTL.
func (s *OrderService) ListActiveOrders(ctx context.Context, driver string) ([]dto.ActiveOrderDTO, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyOrders, driver)
	if cached, err := s.cacheRepository.Get(ctx, cacheKey); err == nil {
		var out []dto.ActiveOrderDTO
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
		s.logger.Warn("битое значение в кеше заказов, перечитываем", zap.String("driver", driver))
	}

	orders, err := s.orderRepository.GetActiveByDriver(ctx, driver)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return effectiveTime(&orders[i]).Before(effectiveTime(&orders[j]))
	})

	now := s.now()
	out := make([]dto.ActiveOrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, toActiveOrderDTO(&orders[i], now))
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := s.cacheRepository.Set(ctx, cacheKey, string(raw), s.cfg.Cache.TTL); err != nil {
			s.logger.Warn("не удалось положить заказы в кеш", zap.String("driver", driver), zap.Error(err))
		}
	}
	return out, nil
}

// UpdateStatus применяет частичное обновление строки заказа. Переходы
// в статус «Livré» и обратно сопровождаются зеркальными операциями над
// открытой выплатой водителя.
func (s *OrderService) UpdateStatus(ctx context.Context, driver string, payload dto.StatusUpdateDTO) error {
	existing, err := s.orderRepository.FindByName(ctx, driver, payload.OrderName)
	if err != nil {
		return err
	}

	mutation := entities.StatusMutation{}
	if payload.NewStatus.Valid {
		newStatus := payload.NewStatus.String
		if !constants.IsDeliveryStatus(newStatus) {
			return apperrors.ErrInvalidStatus
		}
		entry := entities.NewLogEntry(s.now(), newStatus)
		mutation.NewStatus = &newStatus
		mutation.StatusLogEntry = &entry
	}
	if payload.Note.Valid {
		mutation.Note = &payload.Note.String
	}
	if payload.ScheduledTime.Valid {
		mutation.ScheduledTime = &payload.ScheduledTime.String
	}
	if payload.CashAmount.Valid {
		mutation.CashAmount = &payload.CashAmount.Float64
	}
	if payload.CommLog.Valid {
		entry := entities.NewLogEntry(s.now(), payload.CommLog.String)
		mutation.CommLogEntry = &entry
	}

	if err := s.orderRepository.ApplyStatusUpdate(ctx, driver, payload.OrderName, mutation); err != nil {
		return err
	}

	if err := s.applyLedgerHooks(ctx, driver, existing, payload); err != nil {
		return err
	}

	s.invalidateDriver(ctx, driver)
	return nil
}

// applyLedgerHooks двигает заказ между строкой заказов и выплатой.
// Вход в «Livré» добавляет вклад в открытую выплату (тариф считается
// заново от тегов), выход из него откатывает вклад по сохраненным
// значениям.
func (s *OrderService) applyLedgerHooks(ctx context.Context, driver string, existing *entities.Order, payload dto.StatusUpdateDTO) error {
	if !payload.NewStatus.Valid {
		return nil
	}
	newStatus := payload.NewStatus.String

	if newStatus == constants.StatusDelivered && existing.DeliveryStatus != constants.StatusDelivered {
		cash := existing.CashAmount
		if payload.CashAmount.Valid {
			cash = payload.CashAmount.Float64
		}
		fee := CalculateDriverFee(existing.Tags, s.cfg.Fees)
		payoutID, err := s.payoutRepository.AddOrderToOpenBatch(ctx, driver, existing.OrderName, cash, fee)
		if err != nil {
			return fmt.Errorf("ошибка добавления заказа %s в выплату: %w", existing.OrderName, err)
		}
		s.logger.Info("заказ добавлен в выплату",
			zap.String("driver", driver),
			zap.String("order", existing.OrderName),
			zap.String("payout", payoutID),
		)
		return nil
	}

	if newStatus != constants.StatusDelivered && existing.DeliveryStatus == constants.StatusDelivered {
		if existing.PayoutID == nil {
			return nil
		}
		cash := existing.CashAmount
		if payload.CashAmount.Valid {
			cash = payload.CashAmount.Float64
		}
		err := s.payoutRepository.RemoveOrderFromBatch(ctx, driver, *existing.PayoutID, existing.OrderName, cash, existing.DriverFee)
		if err != nil {
			return fmt.Errorf("ошибка отката заказа %s из выплаты: %w", existing.OrderName, err)
		}
		s.logger.Info("заказ убран из выплаты",
			zap.String("driver", driver),
			zap.String("order", existing.OrderName),
			zap.String("payout", *existing.PayoutID),
		)
	}
	return nil
}

func (s *OrderService) invalidateDriver(ctx context.Context, driver string) {
	err := s.cacheRepository.Del(ctx,
		fmt.Sprintf(constants.CacheKeyOrders, driver),
		fmt.Sprintf(constants.CacheKeyPayouts, driver),
	)
	if err != nil {
		s.logger.Warn("не удалось сбросить кеш водителя", zap.String("driver", driver), zap.Error(err))
	}
}

func effectiveTime(o *entities.Order) time.Time {
	if o.ScheduledTime != "" {
		if t, err := utils.ParseTimestamp(o.ScheduledTime); err == nil {
			return t
		}
	}
	return o.CreatedAt
}

// isUrgent: до назначенного времени остался час или меньше (просрочка
// тоже считается срочной). Без назначенного времени заказ не срочный.
func isUrgent(o *entities.Order, now time.Time) bool {
	if o.ScheduledTime == "" {
		return false
	}
	t, err := utils.ParseTimestamp(o.ScheduledTime)
	if err != nil {
		return false
	}
	return t.Sub(now) <= constants.UrgencyWindowSeconds*time.Second
}

func toActiveOrderDTO(o *entities.Order, now time.Time) dto.ActiveOrderDTO {
	payoutID := ""
	if o.PayoutID != nil {
		payoutID = *o.PayoutID
	}
	return dto.ActiveOrderDTO{
		Timestamp:      utils.FormatTimestamp(o.CreatedAt),
		OrderName:      o.OrderName,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		Address:        o.Address,
		Tags:           o.Tags,
		DeliveryStatus: o.DeliveryStatus,
		Notes:          o.Note,
		ScheduledTime:  o.ScheduledTime,
		ScanDate:       utils.FormatDate(o.ScanDate),
		CashAmount:     o.CashAmount,
		DriverFee:      o.DriverFee,
		PayoutID:       payoutID,
		StatusLog:      toLogEntryDTOs(o.StatusLog),
		CommLog:        toLogEntryDTOs(o.CommLog),
		Urgent:         isUrgent(o, now),
	}
}

func toLogEntryDTOs(entries []entities.LogEntry) []dto.LogEntryDTO {
	out := make([]dto.LogEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LogEntryDTO{At: e.At, Value: e.Value})
	}
	return out
}
