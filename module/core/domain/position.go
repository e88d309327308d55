package domain

import (
	"fmt"
	"time"
)

// GeoPoint is a coordinate pair. Everywhere a pair is serialized the
// order is longitude first (GeoJSON axis order).
type GeoPoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

func (p GeoPoint) Validate() error {
	if p.Lng < -180 || p.Lng > 180 {
		return &InvalidCoordinateError{Reason: fmt.Sprintf("lng %v: must be between -180 and 180", p.Lng)}
	}
	if p.Lat < -90 || p.Lat > 90 {
		return &InvalidCoordinateError{Reason: fmt.Sprintf("lat %v: must be between -90 and 90", p.Lat)}
	}
	return nil
}

// Position is one persisted check-in. Immutable once written.
type Position struct {
	ID         string    `json:"id"`
	User       string    `json:"user"`
	CreateTime time.Time `json:"create_time"`
	Location   GeoPoint  `json:"location"`
}

// CheckinRequest is the ingestion input. An empty User means the
// caller has no identity yet and one must be minted.
type CheckinRequest struct {
	User     string
	Location GeoPoint
}

// CheckinResult is what both ingestion paths converge to.
type CheckinResult struct {
	ID   string `json:"id"`
	User string `json:"user"`
}

// NearbyPosition is the proximity-query projection of a Position, with
// the creation time already rendered in the display timezone.
type NearbyPosition struct {
	ID         string     `json:"id"`
	User       string     `json:"user"`
	CreateTime string     `json:"createTime"`
	Location   [2]float64 `json:"location"`
}

// CheckinEvent is published for every accepted check-in.
type CheckinEvent struct {
	ID        string   `json:"id"`
	User      string   `json:"user"`
	Location  GeoPoint `json:"location"`
	CreatedAt int64    `json:"created_at"`
}
