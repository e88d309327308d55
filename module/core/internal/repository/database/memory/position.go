// Package memory holds an in-process PositionRepository backed by a
// geohash-bucketed index. It backs the repository and service tests
// and serves as a store for local development without MongoDB.
package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"

	"github.com/chainal/red-wolf-project/module/core/domain"
	"github.com/chainal/red-wolf-project/module/core/internal/repository/database"
)

var _ database.PositionRepository = (*PositionRepo)(nil)

const earthRadiusMeters = 6371000

// indexPrecision controls the bucket resolution. Precision 6 cells are
// about 1.2km x 0.6km; queries select a coarser prefix per radius.
const indexPrecision = 6

type PositionRepo struct {
	mu      sync.RWMutex
	buckets map[string][]domain.Position // geohash at indexPrecision -> positions
}

func NewPositionRepo() *PositionRepo {
	return &PositionRepo{buckets: make(map[string][]domain.Position)}
}

func (r *PositionRepo) Insert(_ context.Context, user string, loc domain.GeoPoint) (*domain.Position, error) {
	pos := domain.Position{
		ID:         uuid.NewString(),
		User:       user,
		CreateTime: time.Now().UTC(),
		Location:   loc,
	}

	key := geohash.EncodeWithPrecision(loc.Lat, loc.Lng, indexPrecision)

	r.mu.Lock()
	r.buckets[key] = append(r.buckets[key], pos)
	r.mu.Unlock()

	return &pos, nil
}

func (r *PositionRepo) DistinctUsers(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var users []string
	for _, bucket := range r.buckets {
		for _, pos := range bucket {
			if _, ok := seen[pos.User]; !ok {
				seen[pos.User] = struct{}{}
				users = append(users, pos.User)
			}
		}
	}
	return users, nil
}

func (r *PositionRepo) FindNear(_ context.Context, center domain.GeoPoint, maxDistanceMeters float64, limit int64) ([]domain.Position, error) {
	// Candidate cells: the center's cell at a precision whose minimum
	// dimension covers the radius, plus its eight neighbors. Every
	// point within the radius falls in one of those nine cells.
	precision := coverPrecision(maxDistanceMeters)
	centerCell := geohash.EncodeWithPrecision(center.Lat, center.Lng, precision)
	cells := append(geohash.Neighbors(centerCell), centerCell)

	type hit struct {
		pos  domain.Position
		dist float64
	}

	r.mu.RLock()
	var hits []hit
	for key, bucket := range r.buckets {
		if !matchesAny(key, cells) {
			continue
		}
		for _, pos := range bucket {
			d := haversineMeters(center.Lat, center.Lng, pos.Location.Lat, pos.Location.Lng)
			if d <= maxDistanceMeters {
				hits = append(hits, hit{pos: pos, dist: d})
			}
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	if limit > 0 && int64(len(hits)) > limit {
		hits = hits[:limit]
	}

	results := make([]domain.Position, len(hits))
	for i, h := range hits {
		results[i] = h.pos
	}
	return results, nil
}

func matchesAny(key string, cells []string) bool {
	for _, cell := range cells {
		if strings.HasPrefix(key, cell) {
			return true
		}
	}
	return false
}

// minCellMeters is the smaller dimension of a geohash cell per
// precision level; a cell plus its neighbor ring covers any radius up
// to that dimension.
var minCellMeters = [...]float64{0, 4992600, 624100, 78000, 19500, 4890, 610}

func coverPrecision(radiusMeters float64) uint {
	precision := uint(1)
	for p := uint(2); p <= indexPrecision; p++ {
		if minCellMeters[p] < radiusMeters {
			break
		}
		precision = p
	}
	return precision
}

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
