package repository

import (
	"context"

	"github.com/subway-admin/internal/domain"
)

// StationRepository определяет методы для работы со станциями
type StationRepository interface {
	FindAll(ctx context.Context) ([]*domain.Station, error)

	// FindAllByID returns the stations whose ids are in ids. Duplicate and unknown ids are tolerated.
	FindAllByID(ctx context.Context, ids []int64) ([]*domain.Station, error)

	// FindByName returns the station with exactly this name, or (nil, nil).
	FindByName(ctx context.Context, name string) (*domain.Station, error)

	Save(ctx context.Context, station *domain.Station) (*domain.Station, error)

	DeleteByID(ctx context.Context, id int64) error
}
