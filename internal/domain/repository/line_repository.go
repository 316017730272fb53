package repository

import (
	"context"

	"github.com/subway-admin/internal/domain"
)

// LineRepository persists lines together with their station chain.
type LineRepository interface {
	// FindByID returns the line with its stations, or (nil, nil) when no line has that id.
	FindByID(ctx context.Context, id int64) (*domain.Line, error)

	// FindAll returns every line with its stations, ordered by id.
	FindAll(ctx context.Context) ([]*domain.Line, error)

	// Save inserts the line when ID is zero, otherwise stores it under its id.
	// The line's station chain replaces whatever was stored before.
	Save(ctx context.Context, line *domain.Line) (*domain.Line, error)

	// DeleteByID removes the line; an unknown id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
