package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/subway-admin/internal/domain"
	"github.com/subway-admin/internal/domain/repository"
	"github.com/subway-admin/internal/pkg/errors"
	"github.com/subway-admin/internal/usecase/dto"
)

// LineUseCase - use case для линий и их станций
type LineUseCase struct {
	lineRepo    repository.LineRepository
	stationRepo repository.StationRepository
	cache       *networkCache
	logger      *zap.Logger
}

// NewLineUseCase - создание нового LineUseCase. cacheRepo may be nil.
func NewLineUseCase(
	lineRepo repository.LineRepository,
	stationRepo repository.StationRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *LineUseCase {
	return &LineUseCase{
		lineRepo:    lineRepo,
		stationRepo: stationRepo,
		cache:       newNetworkCache(cacheRepo, cacheTTL, logger),
		logger:      logger,
	}
}

// found turns an empty lookup into a NotFound naming the entity kind and key.
func found[T any](v *T, err error, kind, field string, key interface{}) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.NotFound(kind, field, key)
	}
	return v, nil
}

func (uc *LineUseCase) findLine(ctx context.Context, id int64) (*domain.Line, error) {
	line, err := uc.lineRepo.FindByID(ctx, id)
	return found(line, err, "line", "id", id)
}

func (uc *LineUseCase) Save(ctx context.Context, line *domain.Line) (*domain.Line, error) {
	saved, err := uc.lineRepo.Save(ctx, line)
	if err != nil {
		uc.logger.Error("Failed to save line", zap.String("name", line.Name), zap.Error(err))
		return nil, err
	}
	uc.cache.invalidate(ctx)

	uc.logger.Info("Line created", zap.Int64("line_id", saved.ID), zap.String("name", saved.Name))
	return saved, nil
}

func (uc *LineUseCase) ShowLines(ctx context.Context) ([]*domain.Line, error) {
	return uc.lineRepo.FindAll(ctx)
}

// UpdateLine overwrites the stored line's fields with those set in req, keeping its id.
func (uc *LineUseCase) UpdateLine(ctx context.Context, id int64, req dto.LineRequest) error {
	persistLine, err := uc.findLine(ctx, id)
	if err != nil {
		return err
	}

	persistLine.Update(req.ToLine())
	if _, err := uc.lineRepo.Save(ctx, persistLine); err != nil {
		uc.logger.Error("Failed to update line", zap.Int64("line_id", id), zap.Error(err))
		return err
	}
	uc.cache.invalidate(ctx)
	return nil
}

func (uc *LineUseCase) DeleteLineByID(ctx context.Context, id int64) error {
	if err := uc.lineRepo.DeleteByID(ctx, id); err != nil {
		uc.logger.Error("Failed to delete line", zap.Int64("line_id", id), zap.Error(err))
		return err
	}
	uc.cache.invalidate(ctx)
	return nil
}

func (uc *LineUseCase) AddLineStation(ctx context.Context, id int64, req dto.LineStationCreateRequest) error {
	line, err := uc.findLine(ctx, id)
	if err != nil {
		return err
	}

	lineStation := domain.NewLineStation(req.PreStationID, req.StationID, req.Distance, req.Duration)
	line.AddLineStation(lineStation)

	if _, err := uc.lineRepo.Save(ctx, line); err != nil {
		uc.logger.Error("Failed to add station to line",
			zap.Int64("line_id", id),
			zap.Int64("station_id", req.StationID),
			zap.Error(err))
		return err
	}
	uc.cache.invalidate(ctx)
	return nil
}

func (uc *LineUseCase) RemoveLineStation(ctx context.Context, lineID, stationID int64) error {
	line, err := uc.findLine(ctx, lineID)
	if err != nil {
		return err
	}

	line.RemoveLineStationByID(stationID)

	if _, err := uc.lineRepo.Save(ctx, line); err != nil {
		uc.logger.Error("Failed to remove station from line",
			zap.Int64("line_id", lineID),
			zap.Int64("station_id", stationID),
			zap.Error(err))
		return err
	}
	uc.cache.invalidate(ctx)
	return nil
}

func (uc *LineUseCase) FindLineWithStationsByID(ctx context.Context, id int64) (*dto.LineDetailResponse, error) {
	line, err := uc.findLine(ctx, id)
	if err != nil {
		return nil, err
	}

	stations, err := uc.stationRepo.FindAllByID(ctx, line.LineStationsID())
	if err != nil {
		uc.logger.Error("Failed to get line stations", zap.Int64("line_id", id), zap.Error(err))
		return nil, err
	}

	resp := dto.NewLineDetailResponse(line, domain.NewStationIndex(stations))
	return &resp, nil
}

// WholeLines builds every line's detail view from a single bulk station fetch.
func (uc *LineUseCase) WholeLines(ctx context.Context) (*dto.WholeSubwayResponse, error) {
	gen, cacheable := uc.cache.generation(ctx)
	if cacheable {
		if cached := uc.cache.get(ctx, gen); cached != nil {
			return cached, nil
		}
	}

	lines, err := uc.ShowLines(ctx)
	if err != nil {
		uc.logger.Error("Failed to get lines", zap.Error(err))
		return nil, err
	}

	wholeStations, err := uc.stationRepo.FindAllByID(ctx, wholeStationIDs(lines))
	if err != nil {
		uc.logger.Error("Failed to get stations of the network", zap.Error(err))
		return nil, err
	}
	index := domain.NewStationIndex(wholeStations)

	details := make([]dto.LineDetailResponse, 0, len(lines))
	for _, line := range lines {
		matching := domain.NewStationIndex(line.MatchingStations(index))
		details = append(details, dto.NewLineDetailResponse(line, matching))
	}

	resp := &dto.WholeSubwayResponse{LineDetailResponses: details}
	if cacheable {
		uc.cache.set(ctx, gen, resp)
	}
	return resp, nil
}

// wholeStationIDs flattens the station ids of all lines; shared stations repeat.
func wholeStationIDs(lines []*domain.Line) []int64 {
	var ids []int64
	for _, line := range lines {
		ids = append(ids, line.LineStationsID()...)
	}
	return ids
}

func (uc *LineUseCase) FindStationWithName(ctx context.Context, name string) (*domain.Station, error) {
	station, err := uc.stationRepo.FindByName(ctx, name)
	return found(station, err, "station", "name", name)
}

func (uc *LineUseCase) FindAllStations(ctx context.Context) ([]*domain.Station, error) {
	return uc.stationRepo.FindAll(ctx)
}
