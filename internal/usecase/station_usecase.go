package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/subway-admin/internal/domain"
	"github.com/subway-admin/internal/domain/repository"
	"github.com/subway-admin/internal/usecase/dto"
)

// StationUseCase - use case для создания и удаления станций
type StationUseCase struct {
	stationRepo repository.StationRepository
	cache       *networkCache
	logger      *zap.Logger
}

func NewStationUseCase(
	stationRepo repository.StationRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StationUseCase {
	return &StationUseCase{
		stationRepo: stationRepo,
		cache:       newNetworkCache(cacheRepo, cacheTTL, logger),
		logger:      logger,
	}
}

func (uc *StationUseCase) Create(ctx context.Context, req dto.StationCreateRequest) (*domain.Station, error) {
	station, err := uc.stationRepo.Save(ctx, req.ToStation())
	if err != nil {
		uc.logger.Error("Failed to create station", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	uc.cache.invalidate(ctx)

	uc.logger.Info("Station created", zap.Int64("station_id", station.ID), zap.String("name", station.Name))
	return station, nil
}

// DeleteByID removes the station. Lines that still reference it simply stop resolving it.
func (uc *StationUseCase) DeleteByID(ctx context.Context, id int64) error {
	if err := uc.stationRepo.DeleteByID(ctx, id); err != nil {
		uc.logger.Error("Failed to delete station", zap.Int64("station_id", id), zap.Error(err))
		return err
	}
	uc.cache.invalidate(ctx)
	return nil
}
