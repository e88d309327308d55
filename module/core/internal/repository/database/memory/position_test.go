package memory

import (
	"context"
	"sort"
	"testing"

	"github.com/chainal/red-wolf-project/module/core/domain"
)

func TestInsert_AssignsIDAndTimestamp(t *testing.T) {
	repo := NewPositionRepo()

	pos, err := repo.Insert(context.Background(), "mike", domain.GeoPoint{Lng: 116.35, Lat: 39.95})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pos.ID) < 20 {
		t.Errorf("expected an opaque id of at least 20 chars, got %q", pos.ID)
	}
	if pos.CreateTime.IsZero() {
		t.Error("expected a creation timestamp")
	}
	if pos.CreateTime.Location() != pos.CreateTime.UTC().Location() {
		t.Error("expected UTC timestamp")
	}
}

func TestFindNear_RoundTrip(t *testing.T) {
	repo := NewPositionRepo()
	ctx := context.Background()

	if _, err := repo.Insert(ctx, "mike", domain.GeoPoint{Lng: 116.35, Lat: 39.95}); err != nil {
		t.Fatal(err)
	}

	results, err := repo.FindNear(ctx, domain.GeoPoint{Lng: 116.35, Lat: 39.95}, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].User != "mike" {
		t.Fatalf("expected the inserted position back, got %+v", results)
	}
}

func TestFindNear_RespectsRadius(t *testing.T) {
	repo := NewPositionRepo()
	ctx := context.Background()

	// ~ at the query point
	if _, err := repo.Insert(ctx, "near", domain.GeoPoint{Lng: 116.35, Lat: 39.95}); err != nil {
		t.Fatal(err)
	}
	// Hangzhou, hundreds of km away
	if _, err := repo.Insert(ctx, "far", domain.GeoPoint{Lng: 120, Lat: 30}); err != nil {
		t.Fatal(err)
	}

	results, err := repo.FindNear(ctx, domain.GeoPoint{Lng: 116.35, Lat: 39.95}, 2000, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only the near position, got %d results", len(results))
	}
	if results[0].User != "near" {
		t.Errorf("expected near, got %s", results[0].User)
	}
}

func TestFindNear_OrderedByDistance(t *testing.T) {
	repo := NewPositionRepo()
	ctx := context.Background()

	center := domain.GeoPoint{Lng: 116.35, Lat: 39.95}
	// inserted out of distance order
	points := []domain.GeoPoint{
		{Lng: 116.36, Lat: 39.95}, // ~850m
		{Lng: 116.35, Lat: 39.95}, // 0m
		{Lng: 116.40, Lat: 39.95}, // ~4.3km
		{Lng: 116.355, Lat: 39.95}, // ~430m
	}
	for _, p := range points {
		if _, err := repo.Insert(ctx, "u", p); err != nil {
			t.Fatal(err)
		}
	}

	results, err := repo.FindNear(ctx, center, 20000, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(points) {
		t.Fatalf("expected %d results, got %d", len(points), len(results))
	}

	distances := make([]float64, len(results))
	for i, pos := range results {
		distances[i] = haversineMeters(center.Lat, center.Lng, pos.Location.Lat, pos.Location.Lng)
	}
	if !sort.Float64sAreSorted(distances) {
		t.Errorf("distances not ascending: %v", distances)
	}
}

func TestFindNear_Limit(t *testing.T) {
	repo := NewPositionRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.Insert(ctx, "u", domain.GeoPoint{Lng: 116.35, Lat: 39.95}); err != nil {
			t.Fatal(err)
		}
	}

	results, err := repo.FindNear(ctx, domain.GeoPoint{Lng: 116.35, Lat: 39.95}, 1000, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}

func TestFindNear_AcrossCellBoundary(t *testing.T) {
	repo := NewPositionRepo()
	ctx := context.Background()

	// two points ~1.5km apart that straddle a geohash cell edge near
	// the prime meridian
	if _, err := repo.Insert(ctx, "west", domain.GeoPoint{Lng: -0.005, Lat: 51.5}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Insert(ctx, "east", domain.GeoPoint{Lng: 0.005, Lat: 51.5}); err != nil {
		t.Fatal(err)
	}

	results, err := repo.FindNear(ctx, domain.GeoPoint{Lng: 0, Lat: 51.5}, 2000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected both sides of the boundary, got %d results", len(results))
	}
}

func TestDistinctUsers(t *testing.T) {
	repo := NewPositionRepo()
	ctx := context.Background()

	users, err := repo.DistinctUsers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users in an empty store, got %v", users)
	}

	for _, u := range []string{"mike", "anna", "mike"} {
		if _, err := repo.Insert(ctx, u, domain.GeoPoint{Lng: 1, Lat: 1}); err != nil {
			t.Fatal(err)
		}
	}

	users, err = repo.DistinctUsers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 distinct users, got %v", users)
	}
}

func TestCoverPrecision(t *testing.T) {
	tests := []struct {
		radius float64
		want   uint
	}{
		{500, 6},
		{2000, 5},
		{20000, 3},
		{60000, 3},
		{500000, 2},
		{6000000, 1},
	}

	for _, tt := range tests {
		if got := coverPrecision(tt.radius); got != tt.want {
			t.Errorf("coverPrecision(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}
