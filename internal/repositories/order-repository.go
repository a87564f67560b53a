package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"delivery-system/internal/entities"
	"delivery-system/pkg/constants"
	apperrors "delivery-system/pkg/errors"
)

const orderTable = "orders"

var orderColumns = []string{
	"o.id", "o.driver", "o.order_name", "o.customer_name", "o.customer_phone",
	"o.address", "o.tags", "o.fulfillment", "o.order_state", "o.store",
	"o.delivery_status", "o.note", "o.scheduled_time", "o.scan_date",
	"o.cash_amount", "o.driver_fee", "o.payout_id", "o.status_log",
	"o.comm_log", "o.created_at",
}

type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *entities.Order) error
	FindByName(ctx context.Context, driver string, orderName string) (*entities.Order, error)
	GetActiveByDriver(ctx context.Context, driver string) ([]entities.Order, error)
	GetByDriver(ctx context.Context, driver string, start, end *time.Time) ([]entities.Order, error)
	ApplyStatusUpdate(ctx context.Context, driver string, orderName string, m entities.StatusMutation) error
	Search(ctx context.Context, q string) ([]entities.Order, error)
	DeliveredPerDay(ctx context.Context, start, end *time.Time) ([]entities.TrendPoint, error)
	ArchiveBefore(ctx context.Context, cutoff time.Time, archiveDate time.Time) (int, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

// -----------------------------------------------------------
// SCAN
// -----------------------------------------------------------

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	var payoutID sql.NullString
	var statusLog, commLog []byte

	err := row.Scan(
		&o.ID, &o.Driver, &o.OrderName, &o.CustomerName, &o.CustomerPhone,
		&o.Address, &o.Tags, &o.Fulfillment, &o.OrderState, &o.Store,
		&o.DeliveryStatus, &o.Note, &o.ScheduledTime, &o.ScanDate,
		&o.CashAmount, &o.DriverFee, &payoutID, &statusLog,
		&commLog, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования заказа: %w", err)
	}

	if payoutID.Valid {
		o.PayoutID = &payoutID.String
	}
	if err := json.Unmarshal(statusLog, &o.StatusLog); err != nil {
		return nil, fmt.Errorf("ошибка разбора журнала статусов: %w", err)
	}
	if err := json.Unmarshal(commLog, &o.CommLog); err != nil {
		return nil, fmt.Errorf("ошибка разбора журнала коммуникаций: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, builder sq.SelectBuilder) ([]entities.Order, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка заказов: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// -----------------------------------------------------------
// CREATE
// -----------------------------------------------------------

func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	statusLog, err := json.Marshal(order.StatusLog)
	if err != nil {
		return fmt.Errorf("ошибка сериализации журнала статусов: %w", err)
	}
	commLog, err := json.Marshal(order.CommLog)
	if err != nil {
		return fmt.Errorf("ошибка сериализации журнала коммуникаций: %w", err)
	}

	query := `
		INSERT INTO orders (
			driver, order_name, customer_name, customer_phone, address,
			tags, fulfillment, order_state, store, delivery_status,
			note, scheduled_time, scan_date, cash_amount, driver_fee,
			status_log, comm_log, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`

	err = r.storage.QueryRow(ctx, query,
		order.Driver, order.OrderName, order.CustomerName, order.CustomerPhone, order.Address,
		order.Tags, order.Fulfillment, order.OrderState, order.Store, order.DeliveryStatus,
		order.Note, order.ScheduledTime, order.ScanDate, order.CashAmount, order.DriverFee,
		statusLog, commLog, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("ошибка создания заказа %s: %w", order.OrderName, err)
	}
	return nil
}

// -----------------------------------------------------------
// FIND / LIST
// -----------------------------------------------------------

func (r *OrderRepository) FindByName(ctx context.Context, driver string, orderName string) (*entities.Order, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(orderColumns...).
		From(orderTable + " AS o").
		Where(sq.Eq{"o.driver": driver, "o.order_name": orderName}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса: %w", err)
	}

	return scanOrder(r.storage.QueryRow(ctx, query, args...))
}

func (r *OrderRepository) GetActiveByDriver(ctx context.Context, driver string) ([]entities.Order, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(orderColumns...).
		From(orderTable + " AS o").
		Where(sq.Eq{"o.driver": driver}).
		Where(sq.NotEq{"o.delivery_status": constants.CompletedStatuses}).
		OrderBy("o.created_at ASC")

	return r.queryOrders(ctx, builder)
}

func (r *OrderRepository) GetByDriver(ctx context.Context, driver string, start, end *time.Time) ([]entities.Order, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(orderColumns...).
		From(orderTable + " AS o").
		Where(sq.Eq{"o.driver": driver}).
		OrderBy("o.created_at ASC")

	if start != nil {
		builder = builder.Where(sq.GtOrEq{"o.scan_date": *start})
	}
	if end != nil {
		builder = builder.Where(sq.LtOrEq{"o.scan_date": *end})
	}

	return r.queryOrders(ctx, builder)
}

// -----------------------------------------------------------
// UPDATE (смена статуса и сопутствующие поля)
// -----------------------------------------------------------

func (r *OrderRepository) ApplyStatusUpdate(ctx context.Context, driver string, orderName string, m entities.StatusMutation) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Update(orderTable).
		Where(sq.Eq{"driver": driver, "order_name": orderName})

	changed := false
	if m.NewStatus != nil {
		builder = builder.Set("delivery_status", *m.NewStatus)
		changed = true
	}
	if m.StatusLogEntry != nil {
		b, err := m.StatusLogEntry.MarshalAppend()
		if err != nil {
			return fmt.Errorf("ошибка сериализации записи журнала статусов: %w", err)
		}
		builder = builder.Set("status_log", sq.Expr("status_log || ?::jsonb", string(b)))
		changed = true
	}
	if m.Note != nil {
		builder = builder.Set("note", *m.Note)
		changed = true
	}
	if m.ScheduledTime != nil {
		builder = builder.Set("scheduled_time", *m.ScheduledTime)
		changed = true
	}
	if m.CashAmount != nil {
		builder = builder.Set("cash_amount", *m.CashAmount)
		changed = true
	}
	if m.CommLogEntry != nil {
		b, err := m.CommLogEntry.MarshalAppend()
		if err != nil {
			return fmt.Errorf("ошибка сериализации записи журнала коммуникаций: %w", err)
		}
		builder = builder.Set("comm_log", sq.Expr("comm_log || ?::jsonb", string(b)))
		changed = true
	}
	if !changed {
		return nil
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса обновления: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления заказа %s: %w", orderName, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------
// ПОИСК ПО ВСЕМ ВОДИТЕЛЯМ
// -----------------------------------------------------------

func (r *OrderRepository) Search(ctx context.Context, q string) ([]entities.Order, error) {
	pat := "%" + q + "%"
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(orderColumns...).
		From(orderTable + " AS o").
		Where(sq.Or{
			sq.ILike{"o.order_name": pat},
			sq.ILike{"o.customer_phone": pat},
		}).
		OrderBy("o.driver ASC", "o.created_at ASC")

	return r.queryOrders(ctx, builder)
}

// -----------------------------------------------------------
// ТРЕНДЫ
// -----------------------------------------------------------

func (r *OrderRepository) DeliveredPerDay(ctx context.Context, start, end *time.Time) ([]entities.TrendPoint, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select("o.scan_date", "COUNT(*)").
		From(orderTable + " AS o").
		Where(sq.Eq{"o.delivery_status": constants.StatusDelivered}).
		GroupBy("o.scan_date").
		OrderBy("o.scan_date ASC")

	if start != nil {
		builder = builder.Where(sq.GtOrEq{"o.scan_date": *start})
	}
	if end != nil {
		builder = builder.Where(sq.LtOrEq{"o.scan_date": *end})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса трендов: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения трендов: %w", err)
	}
	defer rows.Close()

	points := make([]entities.TrendPoint, 0)
	for rows.Next() {
		var p entities.TrendPoint
		if err := rows.Scan(&p.Date, &p.Delivered); err != nil {
			return nil, fmt.Errorf("ошибка сканирования точки тренда: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// -----------------------------------------------------------
// АРХИВАЦИЯ
// -----------------------------------------------------------

// ArchiveBefore переносит в archived_orders все строки, созданные до
// cutoff, одной транзакцией.
func (r *OrderRepository) ArchiveBefore(ctx context.Context, cutoff time.Time, archiveDate time.Time) (archived int, err error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.Background())
		}
	}()

	copyQuery := `
		INSERT INTO archived_orders (
			driver, order_name, customer_name, customer_phone, address,
			tags, fulfillment, order_state, store, delivery_status,
			note, scheduled_time, scan_date, cash_amount, driver_fee,
			payout_id, status_log, comm_log, created_at, archive_date
		)
		SELECT
			driver, order_name, customer_name, customer_phone, address,
			tags, fulfillment, order_state, store, delivery_status,
			note, scheduled_time, scan_date, cash_amount, driver_fee,
			payout_id, status_log, comm_log, created_at, $1
		FROM orders
		WHERE created_at < $2`

	if _, err = tx.Exec(ctx, copyQuery, archiveDate, cutoff); err != nil {
		return 0, fmt.Errorf("ошибка копирования строк в архив: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления заархивированных строк: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка коммита транзакции: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
