package repositories

import (
	"context"
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

const payoutTable = "payouts"

type PayoutRepositoryInterface interface {
	GetPayoutsByDriver(ctx context.Context, driver string) ([]entities.Payout, error)
	AddOrderToOpenBatch(ctx context.Context, driver string, orderName string, cash, fee float64) (string, error)
	RemoveOrderFromBatch(ctx context.Context, driver string, payoutID string, orderName string, cash, fee float64) error
	MarkPaid(ctx context.Context, driver string, payoutID string, paidAt time.Time) error
}

type PayoutRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPayoutRepository(storage *pgxpool.Pool, logger *zap.Logger) PayoutRepositoryInterface {
	return &PayoutRepository{storage: storage, logger: logger}
}

func scanPayout(row pgx.Row) (*entities.Payout, error) {
	var p entities.Payout
	err := row.Scan(
		&p.ID, &p.Driver, &p.PayoutID, &p.DateCreated, &p.Orders,
		&p.TotalCash, &p.TotalFees, &p.TotalPayout, &p.Status, &p.DatePaid,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования выплаты: %w", err)
	}
	return &p, nil
}

func (r *PayoutRepository) GetPayoutsByDriver(ctx context.Context, driver string) ([]entities.Payout, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(
		"id", "driver", "payout_id", "date_created", "orders",
		"total_cash", "total_fees", "total_payout", "status", "date_paid",
	).
		From(payoutTable).
		Where(sq.Eq{"driver": driver}).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка выплат: %w", err)
	}
	defer rows.Close()

	payouts := make([]entities.Payout, 0)
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, *p)
	}
	return payouts, rows.Err()
}

// lockDriverLedger берет advisory-блокировку на водителя до конца
// транзакции. Без нее два конкурентных добавления при отсутствии
// открытой выплаты оба не увидят строк под FOR UPDATE и оба вставят
// новую, нарушив правило «не больше одной открытой выплаты на водителя».
func lockDriverLedger(ctx context.Context, tx pgx.Tx, driver string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, driver); err != nil {
		return fmt.Errorf("ошибка блокировки выплат водителя %s: %w", driver, err)
	}
	return nil
}

// selectOpenBatch находит последнюю неоплаченную выплату водителя и
// блокирует строку до конца транзакции.
func selectOpenBatch(ctx context.Context, tx pgx.Tx, driver string) (*entities.Payout, error) {
	query := `
		SELECT id, driver, payout_id, date_created, orders,
		       total_cash, total_fees, total_payout, status, date_paid
		FROM payouts
		WHERE driver = $1 AND status <> $2
		ORDER BY id DESC
		LIMIT 1
		FOR UPDATE`

	return scanPayout(tx.QueryRow(ctx, query, driver, constants.PayoutStatusPaid))
}

// freePayoutID выдает токен, не занятый прошлыми выплатами водителя.
// Базовый токен минутной точности мог остаться за уже закрытой выплатой,
// а уникальность (driver, payout_id) держит таблица.
func freePayoutID(ctx context.Context, tx pgx.Tx, driver string, at time.Time) (string, error) {
	var lookupErr error
	id := entities.UniquePayoutID(at, func(candidate string) bool {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM payouts WHERE driver = $1 AND payout_id = $2)`,
			driver, candidate,
		).Scan(&exists)
		if err != nil {
			lookupErr = fmt.Errorf("ошибка проверки токена выплаты %s: %w", candidate, err)
			return false
		}
		return exists
	})
	if lookupErr != nil {
		return "", lookupErr
	}
	return id, nil
}

// AddOrderToOpenBatch добавляет доставленный заказ в открытую выплату
// водителя, создавая ее при необходимости, и возвращает токен выплаты.
// Итоги и ссылка payout_id на строке заказа меняются в одной транзакции.
func (r *PayoutRepository) AddOrderToOpenBatch(ctx context.Context, driver string, orderName string, cash, fee float64) (payoutID string, err error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.Background())
		}
	}()

	if err = lockDriverLedger(ctx, tx, driver); err != nil {
		return "", err
	}

	batch, err := selectOpenBatch(ctx, tx, driver)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		payoutID, err = freePayoutID(ctx, tx, driver, time.Now())
		if err != nil {
			return "", err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO payouts (driver, payout_id, orders, total_cash, total_fees, total_payout, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			driver, payoutID, orderName, cash, fee, cash-fee, constants.PayoutStatusPending,
		)
		if err != nil {
			return "", fmt.Errorf("ошибка создания выплаты: %w", err)
		}
	case err != nil:
		return "", err
	default:
		payoutID = batch.PayoutID
		_, err = tx.Exec(ctx, `
			UPDATE payouts
			SET orders = $1,
			    total_cash = total_cash + $2,
			    total_fees = total_fees + $3,
			    total_payout = total_payout + $4
			WHERE id = $5`,
			entities.AppendOrder(batch.Orders, orderName), cash, fee, cash-fee, batch.ID,
		)
		if err != nil {
			return "", fmt.Errorf("ошибка пополнения выплаты %s: %w", payoutID, err)
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE orders SET payout_id = $1 WHERE driver = $2 AND order_name = $3`,
		payoutID, driver, orderName,
	)
	if err != nil {
		return "", fmt.Errorf("ошибка привязки заказа %s к выплате: %w", orderName, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("ошибка коммита транзакции: %w", err)
	}
	return payoutID, nil
}

// RemoveOrderFromBatch откатывает вклад заказа из выплаты при уходе со
// статуса «Livré». Если выплата или заказ в ней не найдены, ничего не
// делает: откатывать нечего.
func (r *PayoutRepository) RemoveOrderFromBatch(ctx context.Context, driver string, payoutID string, orderName string, cash, fee float64) (err error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.Background())
		}
	}()

	batch, err := scanPayout(tx.QueryRow(ctx, `
		SELECT id, driver, payout_id, date_created, orders,
		       total_cash, total_fees, total_payout, status, date_paid
		FROM payouts
		WHERE driver = $1 AND payout_id = $2
		FOR UPDATE`,
		driver, payoutID,
	))
	if errors.Is(err, apperrors.ErrNotFound) {
		err = nil
		return tx.Commit(ctx)
	}
	if err != nil {
		return err
	}

	remaining, found := entities.RemoveOrder(batch.Orders, orderName)
	if found {
		_, err = tx.Exec(ctx, `
			UPDATE payouts
			SET orders = $1,
			    total_cash = total_cash - $2,
			    total_fees = total_fees - $3,
			    total_payout = total_payout - $4
			WHERE id = $5`,
			remaining, cash, fee, cash-fee, batch.ID,
		)
		if err != nil {
			return fmt.Errorf("ошибка отката вклада заказа %s: %w", orderName, err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE orders SET payout_id = NULL WHERE driver = $1 AND order_name = $2`,
			driver, orderName,
		)
		if err != nil {
			return fmt.Errorf("ошибка отвязки заказа %s от выплаты: %w", orderName, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка коммита транзакции: %w", err)
	}
	return nil
}

// MarkPaid закрывает выплату. Повторное закрытие отклоняется, чтобы не
// переписать дату оплаты.
func (r *PayoutRepository) MarkPaid(ctx context.Context, driver string, payoutID string, paidAt time.Time) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE payouts
		SET status = $1, date_paid = $2
		WHERE driver = $3 AND payout_id = $4 AND status <> $1`,
		constants.PayoutStatusPaid, paidAt, driver, payoutID,
	)
	if err != nil {
		return fmt.Errorf("ошибка отметки выплаты %s: %w", payoutID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		err = r.storage.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM payouts WHERE driver = $1 AND payout_id = $2)`,
			driver, payoutID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("ошибка проверки выплаты %s: %w", payoutID, err)
		}
		if exists {
			return apperrors.ErrPayoutPaid
		}
		return apperrors.ErrNotFound
	}
	return nil
}
