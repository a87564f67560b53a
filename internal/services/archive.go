package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"delivery-system/internal/dto"
	"delivery-system/internal/repositories"
	"delivery-system/pkg/config"
	"delivery-system/pkg/constants"
	"delivery-system/pkg/utils"
)

type ArchiveService struct {
	orderRepository repositories.OrderRepositoryInterface
	cacheRepository repositories.CacheRepositoryInterface
	cfg             *config.Config
	logger          *zap.Logger
	now             func() time.Time
}

func NewArchiveService(
	orderRepository repositories.OrderRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *ArchiveService {
	return &ArchiveService{
		orderRepository: orderRepository,
		cacheRepository: cacheRepository,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// ArchiveYesterday уносит в архив все заказы, созданные до начала
// сегодняшнего дня, и помечает их вчерашней датой архивации.
func (s *ArchiveService) ArchiveYesterday(ctx context.Context) (*dto.ArchiveResultDTO, error) {
	today := utils.StartOfDay(s.now())
	archiveDate := today.AddDate(0, 0, -1)

	archived, err := s.orderRepository.ArchiveBefore(ctx, today, archiveDate)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(s.cfg.Drivers)*2)
	for _, driver := range s.cfg.Drivers {
		keys = append(keys,
			fmt.Sprintf(constants.CacheKeyOrders, driver),
			fmt.Sprintf(constants.CacheKeyPayouts, driver),
		)
	}
	if err := s.cacheRepository.Del(ctx, keys...); err != nil {
		s.logger.Warn("не удалось сбросить кеши после архивации", zap.Error(err))
	}

	s.logger.Info("архивация завершена",
		zap.Int("archived", archived),
		zap.String("archive_date", utils.FormatDate(archiveDate)),
	)
	return &dto.ArchiveResultDTO{Archived: archived}, nil
}
