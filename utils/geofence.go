package utils

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Coordinate is a geographic point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geofence is the polygonal boundary stored on a site. Check-ins may be
// validated against it so a visit cannot be logged from across town.
type Geofence struct {
	Coordinates []Coordinate `json:"coordinates"`
	Name        string       `json:"name,omitempty"`
}

// ParseGeofence validates and decodes a site's geofence column.
func ParseGeofence(geofenceJSON string) (*Geofence, error) {
	if geofenceJSON == "" {
		return nil, nil
	}

	var g Geofence
	if err := json.Unmarshal([]byte(geofenceJSON), &g); err != nil {
		return nil, fmt.Errorf("invalid geofence JSON format: %w", err)
	}
	if len(g.Coordinates) < 3 {
		return nil, errors.New("geofence must have at least 3 coordinates to form a polygon")
	}
	for i, c := range g.Coordinates {
		if c.Lat < -90 || c.Lat > 90 {
			return nil, fmt.Errorf("coordinate %d: latitude %v out of range", i, c.Lat)
		}
		if c.Lng < -180 || c.Lng > 180 {
			return nil, fmt.Errorf("coordinate %d: longitude %v out of range", i, c.Lng)
		}
	}
	return &g, nil
}

// Contains reports whether the point lies inside the fence polygon.
// The ring is closed automatically if the stored polygon is open.
func (g *Geofence) Contains(point Coordinate) bool {
	ring := make(orb.Ring, 0, len(g.Coordinates)+1)
	for _, c := range g.Coordinates {
		ring = append(ring, orb.Point{c.Lng, c.Lat})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return planar.PolygonContains(orb.Polygon{ring}, orb.Point{point.Lng, point.Lat})
}
