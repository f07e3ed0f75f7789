package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Status is the state of the address resolution state machine.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// ErrMalformedPosition is returned when a carried "lat,lng" value cannot be parsed.
var ErrMalformedPosition = errors.New("position must be formatted as \"lat,lng\"")

// Coordinates is a position reported by a geolocation source.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both components are finite and within the WGS84 ranges.
func (c Coordinates) Valid() bool {
	return inRange(c.Latitude, 90) && inRange(c.Longitude, 180)
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -limit && v <= limit
}

// Position is a possibly unresolved location. A nil component means absent,
// which is distinct from a zero coordinate.
type Position struct {
	Latitude  *float64
	Longitude *float64
}

// PositionFrom builds a complete position from reported coordinates.
func PositionFrom(c Coordinates) Position {
	lat, lng := c.Latitude, c.Longitude
	return Position{Latitude: &lat, Longitude: &lng}
}

// Complete reports whether both components are present.
func (p Position) Complete() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Coordinates returns the components when the position is complete.
func (p Position) Coordinates() (Coordinates, bool) {
	if !p.Complete() {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: *p.Latitude, Longitude: *p.Longitude}, true
}

// String serializes the position as "lat,lng", or "" when unresolved.
func (p Position) String() string {
	if !p.Complete() {
		return ""
	}
	return strconv.FormatFloat(*p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(*p.Longitude, 'f', -1, 64)
}

// ParsePosition reads the carried "lat,lng" representation. Blank input is an unresolved position.
func ParsePosition(raw string) (Position, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Position{}, nil
	}
	latRaw, lngRaw, ok := strings.Cut(raw, ",")
	if !ok {
		return Position{}, ErrMalformedPosition
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil || !inRange(lat, 90) {
		return Position{}, fmt.Errorf("%w: latitude %q", ErrMalformedPosition, latRaw)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil || !inRange(lng, 180) {
		return Position{}, fmt.Errorf("%w: longitude %q", ErrMalformedPosition, lngRaw)
	}
	return PositionFrom(Coordinates{Latitude: lat, Longitude: lng}), nil
}

// Resolution is the observable state of an address lookup.
type Resolution struct {
	Status   Status
	Address  string
	Position Position
	Error    string
}

// Loading reports whether a lookup is in flight.
func (r Resolution) Loading() bool {
	return r.Status == StatusLoading
}

// Resolved reports whether the resolution carries a usable address and position.
func (r Resolution) Resolved() bool {
	return r.Address != "" && r.Position.Complete()
}
