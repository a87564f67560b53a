package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"delivery-system/internal/dto"
	"delivery-system/internal/entities"
	"delivery-system/internal/repositories"
	"delivery-system/pkg/utils"
)

type EmployeeService struct {
	employeeRepository repositories.EmployeeRepositoryInterface
	logger             *zap.Logger
	now                func() time.Time
}

func NewEmployeeService(employeeRepository repositories.EmployeeRepositoryInterface, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepository: employeeRepository,
		logger:             logger,
		now:                time.Now,
	}
}

func (s *EmployeeService) CreateLog(ctx context.Context, payload dto.CreateEmployeeLogDTO) error {
	log := &entities.EmployeeLog{
		Employee:  payload.Employee,
		CreatedAt: s.now(),
	}
	if payload.Order.Valid {
		log.OrderName = &payload.Order.String
	}
	if payload.Amount.Valid {
		log.Amount = &payload.Amount.Float64
	}

	if err := s.employeeRepository.Create(ctx, log); err != nil {
		s.logger.Error("ошибка при создании записи сотрудника", zap.Error(err))
		return err
	}
	return nil
}

func (s *EmployeeService) GetLogs(ctx context.Context) ([]dto.EmployeeLogDTO, error) {
	logs, err := s.employeeRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EmployeeLogDTO, 0, len(logs))
	for _, l := range logs {
		item := dto.EmployeeLogDTO{
			Timestamp: utils.FormatTimestamp(l.CreatedAt),
			Employee:  l.Employee,
			Amount:    l.Amount,
		}
		if l.OrderName != nil {
			item.Order = *l.OrderName
		}
		out = append(out, item)
	}
	return out, nil
}
