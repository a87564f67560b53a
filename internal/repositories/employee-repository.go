package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"delivery-system/internal/entities"
)

type EmployeeRepositoryInterface interface {
	Create(ctx context.Context, log *entities.EmployeeLog) error
	GetAll(ctx context.Context) ([]entities.EmployeeLog, error)
}

type EmployeeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEmployeeRepository(storage *pgxpool.Pool, logger *zap.Logger) EmployeeRepositoryInterface {
	return &EmployeeRepository{storage: storage, logger: logger}
}

func (r *EmployeeRepository) Create(ctx context.Context, log *entities.EmployeeLog) error {
	err := r.storage.QueryRow(ctx, `
		INSERT INTO employee_logs (employee, order_name, amount, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		log.Employee, log.OrderName, log.Amount, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("ошибка создания записи сотрудника: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]entities.EmployeeLog, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, employee, order_name, amount, created_at
		FROM employee_logs
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей сотрудников: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.EmployeeLog, 0)
	for rows.Next() {
		var l entities.EmployeeLog
		if err := rows.Scan(&l.ID, &l.Employee, &l.OrderName, &l.Amount, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи сотрудника: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
