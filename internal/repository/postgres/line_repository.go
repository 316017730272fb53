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

const lineColumns = `id, name, start_time, end_time, interval_time, bg_color, created_at, updated_at`

// lineStationRow is a line_station record tagged with its owning line.
type lineStationRow struct {
	LineID int64 `db:"line_id"`
	domain.LineStation
}

type lineRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLineRepository(db *DB) repository.LineRepository {
	return &lineRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *lineRepository) FindByID(ctx context.Context, id int64) (*domain.Line, error) {
	query := `SELECT ` + lineColumns + ` FROM lines WHERE id = $1`

	var line domain.Line
	err := r.db.GetContext(ctx, &line, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get line by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	stations, err := r.lineStations(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	line.Stations = stations[id]

	return &line, nil
}

func (r *lineRepository) FindAll(ctx context.Context) ([]*domain.Line, error) {
	query := `SELECT ` + lineColumns + ` FROM lines ORDER BY id`

	var lines []*domain.Line
	if err := r.db.SelectContext(ctx, &lines, query); err != nil {
		r.logger.Error("Failed to get lines", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if len(lines) == 0 {
		return []*domain.Line{}, nil
	}

	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID)
	}

	// One query for the stations of every line
	stations, err := r.lineStations(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		l.Stations = stations[l.ID]
	}

	return lines, nil
}

func (r *lineRepository) lineStations(ctx context.Context, lineIDs []int64) (map[int64][]domain.LineStation, error) {
	query := `
		SELECT line_id, pre_station_id, station_id, distance, duration
		FROM line_station
		WHERE line_id = ANY($1)
		ORDER BY line_id, seq
	`

	var rows []lineStationRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(lineIDs)); err != nil {
		r.logger.Error("Failed to get line stations", zap.Int("lines", len(lineIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	result := make(map[int64][]domain.LineStation, len(lineIDs))
	for _, row := range rows {
		result[row.LineID] = append(result[row.LineID], row.LineStation)
	}
	return result, nil
}

func (r *lineRepository) Save(ctx context.Context, line *domain.Line) (*domain.Line, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin line transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.upsertLine(ctx, tx, line); err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Line name already taken", zap.String("name", line.Name))
			return nil, errors.AlreadyExists("line", "name", line.Name)
		}
		r.logger.Error("Failed to save line",
			zap.Int64("id", line.ID),
			zap.String("name", line.Name),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := r.replaceLineStations(ctx, tx, line); err != nil {
		r.logger.Error("Failed to save line stations", zap.Int64("line_id", line.ID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit line transaction", zap.Int64("line_id", line.ID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return line, nil
}

func (r *lineRepository) upsertLine(ctx context.Context, tx *sqlx.Tx, line *domain.Line) error {
	if line.ID == 0 {
		query := `
			INSERT INTO lines (name, start_time, end_time, interval_time, bg_color)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`
		return tx.QueryRowxContext(ctx, query,
			line.Name, line.StartTime, line.EndTime, line.IntervalTime, line.BgColor,
		).Scan(&line.ID, &line.CreatedAt, &line.UpdatedAt)
	}

	query := `
		INSERT INTO lines (id, name, start_time, end_time, interval_time, bg_color)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			interval_time = EXCLUDED.interval_time,
			bg_color = EXCLUDED.bg_color,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`
	return tx.QueryRowxContext(ctx, query,
		line.ID, line.Name, line.StartTime, line.EndTime, line.IntervalTime, line.BgColor,
	).Scan(&line.CreatedAt, &line.UpdatedAt)
}

func (r *lineRepository) replaceLineStations(ctx context.Context, tx *sqlx.Tx, line *domain.Line) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM line_station WHERE line_id = $1`, line.ID); err != nil {
		return err
	}

	query := `
		INSERT INTO line_station (line_id, seq, pre_station_id, station_id, distance, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for seq, ls := range line.Stations {
		if _, err := tx.ExecContext(ctx, query,
			line.ID, seq, ls.PreStationID, ls.StationID, ls.Distance, ls.Duration,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *lineRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lines WHERE id = $1`, id); err != nil {
		r.logger.Error("Failed to delete line", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}
