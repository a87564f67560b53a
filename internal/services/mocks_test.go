package services

import (
	"context"
	"time"

	"delivery-system/internal/entities"
	"delivery-system/internal/integrations/shopify"
	"delivery-system/pkg/config"
	"delivery-system/pkg/constants"
	apperrors "delivery-system/pkg/errors"
)

// Фейковые репозитории для тестов сервисов: держат состояние в памяти и
// повторяют контрактное поведение настоящих (ErrNotFound, записи в
// журналы, привязка выплат).

type fakeOrderRepo struct {
	orders []*entities.Order

	// Зафиксированные аргументы последнего вызова, для проверки границ
	// периодов.
	lastStart *time.Time
	lastEnd   *time.Time

	trendPoints []entities.TrendPoint
}

func (r *fakeOrderRepo) key(driver, name string) *entities.Order {
	for _, o := range r.orders {
		if o.Driver == driver && o.OrderName == name {
			return o
		}
	}
	return nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entities.Order) error {
	cp := *order
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *fakeOrderRepo) FindByName(ctx context.Context, driver string, orderName string) (*entities.Order, error) {
	if o := r.key(driver, orderName); o != nil {
		cp := *o
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeOrderRepo) GetActiveByDriver(ctx context.Context, driver string) ([]entities.Order, error) {
	out := make([]entities.Order, 0)
	for _, o := range r.orders {
		if o.Driver == driver && !constants.IsCompletedStatus(o.DeliveryStatus) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetByDriver(ctx context.Context, driver string, start, end *time.Time) ([]entities.Order, error) {
	r.lastStart, r.lastEnd = start, end
	out := make([]entities.Order, 0)
	for _, o := range r.orders {
		if o.Driver != driver {
			continue
		}
		if start != nil && o.ScanDate.Before(*start) {
			continue
		}
		if end != nil && o.ScanDate.After(*end) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) ApplyStatusUpdate(ctx context.Context, driver string, orderName string, m entities.StatusMutation) error {
	o := r.key(driver, orderName)
	if o == nil {
		return apperrors.ErrNotFound
	}
	if m.NewStatus != nil {
		o.DeliveryStatus = *m.NewStatus
	}
	if m.StatusLogEntry != nil {
		o.StatusLog = append(o.StatusLog, *m.StatusLogEntry)
	}
	if m.Note != nil {
		o.Note = *m.Note
	}
	if m.ScheduledTime != nil {
		o.ScheduledTime = *m.ScheduledTime
	}
	if m.CashAmount != nil {
		o.CashAmount = *m.CashAmount
	}
	if m.CommLogEntry != nil {
		o.CommLog = append(o.CommLog, *m.CommLogEntry)
	}
	return nil
}

func (r *fakeOrderRepo) Search(ctx context.Context, q string) ([]entities.Order, error) {
	out := make([]entities.Order, 0)
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) DeliveredPerDay(ctx context.Context, start, end *time.Time) ([]entities.TrendPoint, error) {
	r.lastStart, r.lastEnd = start, end
	return r.trendPoints, nil
}

func (r *fakeOrderRepo) ArchiveBefore(ctx context.Context, cutoff time.Time, archiveDate time.Time) (int, error) {
	archived := 0
	kept := r.orders[:0]
	for _, o := range r.orders {
		if o.CreatedAt.Before(cutoff) {
			archived++
			continue
		}
		kept = append(kept, o)
	}
	r.orders = kept
	return archived, nil
}

type fakePayoutRepo struct {
	orderRepo *fakePayoutOrders
	payouts   []*entities.Payout
}

// fakePayoutOrders — минимальная связь с заказами, нужная выплатам:
// проставить и снять ссылку payout_id.
type fakePayoutOrders struct {
	repo *fakeOrderRepo
}

func newFakePayoutRepo(orders *fakeOrderRepo) *fakePayoutRepo {
	return &fakePayoutRepo{orderRepo: &fakePayoutOrders{repo: orders}}
}

func (r *fakePayoutRepo) GetPayoutsByDriver(ctx context.Context, driver string) ([]entities.Payout, error) {
	out := make([]entities.Payout, 0)
	for i := len(r.payouts) - 1; i >= 0; i-- {
		if r.payouts[i].Driver == driver {
			out = append(out, *r.payouts[i])
		}
	}
	return out, nil
}

func (r *fakePayoutRepo) openBatch(driver string) *entities.Payout {
	for i := len(r.payouts) - 1; i >= 0; i-- {
		p := r.payouts[i]
		if p.Driver == driver && p.Status != constants.PayoutStatusPaid {
			return p
		}
	}
	return nil
}

func (r *fakePayoutRepo) takenPayoutID(driver, id string) bool {
	for _, p := range r.payouts {
		if p.Driver == driver && p.PayoutID == id {
			return true
		}
	}
	return false
}

func (r *fakePayoutRepo) AddOrderToOpenBatch(ctx context.Context, driver string, orderName string, cash, fee float64) (string, error) {
	batch := r.openBatch(driver)
	if batch == nil {
		batch = &entities.Payout{
			Driver: driver,
			PayoutID: entities.UniquePayoutID(testNow, func(id string) bool {
				return r.takenPayoutID(driver, id)
			}),
			DateCreated: testNow,
			Status:      constants.PayoutStatusPending,
		}
		r.payouts = append(r.payouts, batch)
	}
	batch.Orders = entities.AppendOrder(batch.Orders, orderName)
	batch.TotalCash += cash
	batch.TotalFees += fee
	batch.TotalPayout += cash - fee

	if o := r.orderRepo.repo.key(driver, orderName); o != nil {
		id := batch.PayoutID
		o.PayoutID = &id
	}
	return batch.PayoutID, nil
}

func (r *fakePayoutRepo) RemoveOrderFromBatch(ctx context.Context, driver string, payoutID string, orderName string, cash, fee float64) error {
	for _, p := range r.payouts {
		if p.Driver != driver || p.PayoutID != payoutID {
			continue
		}
		if remaining, found := entities.RemoveOrder(p.Orders, orderName); found {
			p.Orders = remaining
			p.TotalCash -= cash
			p.TotalFees -= fee
			p.TotalPayout -= cash - fee
			if o := r.orderRepo.repo.key(driver, orderName); o != nil {
				o.PayoutID = nil
			}
		}
	}
	return nil
}

func (r *fakePayoutRepo) MarkPaid(ctx context.Context, driver string, payoutID string, paidAt time.Time) error {
	for _, p := range r.payouts {
		if p.Driver == driver && p.PayoutID == payoutID {
			if p.Status == constants.PayoutStatusPaid {
				return apperrors.ErrPayoutPaid
			}
			p.Status = constants.PayoutStatusPaid
			t := paidAt
			p.DatePaid = &t
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeEmployeeRepo struct {
	logs []entities.EmployeeLog
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, log *entities.EmployeeLog) error {
	log.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeEmployeeRepo) GetAll(ctx context.Context) ([]entities.EmployeeLog, error) {
	return append([]entities.EmployeeLog{}, r.logs...), nil
}

// fakeStore подменяет клиент магазина при сканировании.
type fakeStore struct {
	name   string
	orders []shopify.OrderDTO
	err    error
}

func (s *fakeStore) Name() string { return s.name }

func (s *fakeStore) FindOrders(ctx context.Context, orderName string, createdAtMin time.Time) ([]shopify.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Cache:   config.CacheConfig{Driver: "memory", TTL: time.Minute},
		Fees:    config.FeesConfig{Normal: 20, Exchange: 10},
		Drivers: []string{"abderrehman", "anouar"},
	}
}
