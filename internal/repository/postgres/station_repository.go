package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/subway-admin/internal/domain"
	"github.com/subway-admin/internal/domain/repository"
	"github.com/subway-admin/internal/pkg/errors"
	"go.uber.org/zap"
)

type stationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStationRepository(db *DB) repository.StationRepository {
	return &stationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *stationRepository) FindAll(ctx context.Context) ([]*domain.Station, error) {
	stations := []*domain.Station{}
	if err := r.db.SelectContext(ctx, &stations, `SELECT id, name, created_at FROM stations ORDER BY id`); err != nil {
		r.logger.Error("Failed to get stations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *stationRepository) FindAllByID(ctx context.Context, ids []int64) ([]*domain.Station, error) {
	stations := []*domain.Station{}
	if len(ids) == 0 {
		return stations, nil
	}

	query := `SELECT id, name, created_at FROM stations WHERE id = ANY($1) ORDER BY id`
	if err := r.db.SelectContext(ctx, &stations, query, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to get stations by IDs", zap.Int("ids", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *stationRepository) FindByName(ctx context.Context, name string) (*domain.Station, error) {
	var station domain.Station
	err := r.db.GetContext(ctx, &station, `SELECT id, name, created_at FROM stations WHERE name = $1`, name)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get station by name", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &station, nil
}

func (r *stationRepository) Save(ctx context.Context, station *domain.Station) (*domain.Station, error) {
	var err error
	if station.ID == 0 {
		err = r.db.QueryRowxContext(ctx,
			`INSERT INTO stations (name) VALUES ($1) RETURNING id, created_at`,
			station.Name,
		).Scan(&station.ID, &station.CreatedAt)
	} else {
		err = r.db.QueryRowxContext(ctx, `
			INSERT INTO stations (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
			RETURNING created_at`,
			station.ID, station.Name,
		).Scan(&station.CreatedAt)
	}
	if isUniqueViolation(err) {
		r.logger.Warn("Station name already taken", zap.String("name", station.Name))
		return nil, errors.AlreadyExists("station", "name", station.Name)
	}
	if err != nil {
		r.logger.Error("Failed to save station", zap.String("name", station.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return station, nil
}

func (r *stationRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE id = $1`, id); err != nil {
		r.logger.Error("Failed to delete station", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}
