package service

import (
	"context"
	"time"

	"github.com/chainal/red-wolf-project/module/core/domain"
	"github.com/chainal/red-wolf-project/module/core/internal/repository/database"
)

const (
	maxDistanceMeters = 20000
	resultLimit       = 1000

	displayTimeFormat = "2006-01-02 15:04:05"
)

// displayZone is the fixed offset check-in times are rendered in.
// Not negotiated with the caller.
var displayZone = time.FixedZone("UTC+8", 8*60*60)

// NearbyService answers proximity queries around a reference point.
type NearbyService struct {
	repo database.PositionRepository
}

func NewNearbyService(repo database.PositionRepository) *NearbyService {
	return &NearbyService{repo: repo}
}

// Nearby returns positions within the compiled-in radius of center,
// in the store's ascending-distance order.
func (s *NearbyService) Nearby(ctx context.Context, center domain.GeoPoint) ([]domain.NearbyPosition, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}

	positions, err := s.repo.FindNear(ctx, center, maxDistanceMeters, resultLimit)
	if err != nil {
		return nil, err
	}

	results := make([]domain.NearbyPosition, len(positions))
	for i, pos := range positions {
		results[i] = domain.NearbyPosition{
			ID:         pos.ID,
			User:       pos.User,
			CreateTime: pos.CreateTime.In(displayZone).Format(displayTimeFormat),
			Location:   [2]float64{pos.Location.Lng, pos.Location.Lat},
		}
	}
	return results, nil
}
