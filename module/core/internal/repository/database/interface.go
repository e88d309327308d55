package database

import (
	"context"

	"github.com/chainal/red-wolf-project/module/core/domain"
)

type PositionRepository interface {
	// Insert stamps the current UTC time and writes a new position as
	// a single atomic write, returning the stored record with its
	// store-assigned id.
	Insert(ctx context.Context, user string, loc domain.GeoPoint) (*domain.Position, error)

	// DistinctUsers returns every identity that appears on at least
	// one persisted position. Full scan, no cache.
	DistinctUsers(ctx context.Context) ([]string, error)

	// FindNear returns positions within maxDistanceMeters of center,
	// ordered by ascending distance, at most limit results.
	FindNear(ctx context.Context, center domain.GeoPoint, maxDistanceMeters float64, limit int64) ([]domain.Position, error)
}
