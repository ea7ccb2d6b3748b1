package shared

import "fmt"

// distanceBaseOffset is the fixed component added to every non-zero trip,
// so that even a flight to a neighboring position takes measurable time.
const distanceBaseOffset = 1000.0

// Coordinates identifies one slot in the universe grid: a galaxy, a solar
// system within it and a planet position within the system. Coordinates are
// immutable value objects and are used as map keys throughout the core.
type Coordinates struct {
	Galaxy   int `json:"galaxy"`
	System   int `json:"system"`
	Position int `json:"position"`
}

// NewCoordinates creates coordinates with validation
func NewCoordinates(galaxy, system, position int) (Coordinates, error) {
	if galaxy < 1 || system < 1 || position < 1 {
		return Coordinates{}, NewValidationError("coordinates", "galaxy, system and position must be >= 1")
	}
	return Coordinates{Galaxy: galaxy, System: system, Position: position}, nil
}

// DistanceTo computes the abstract travel distance to another slot.
// Galaxy hops dominate, system hops come next, positions are nearly free.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	dg := abs(c.Galaxy - other.Galaxy)
	ds := abs(c.System - other.System)
	dp := abs(c.Position - other.Position)
	if dg == 0 && ds == 0 && dp == 0 {
		return 0
	}
	return float64(dg)*20000 + float64(ds)*1000 + float64(dp)*5 + distanceBaseOffset
}

// Less defines a total order over coordinates. Cross-planet operations
// acquire planet locks in this order to avoid deadlocks.
func (c Coordinates) Less(other Coordinates) bool {
	if c.Galaxy != other.Galaxy {
		return c.Galaxy < other.Galaxy
	}
	if c.System != other.System {
		return c.System < other.System
	}
	return c.Position < other.Position
}

func (c Coordinates) Equals(other Coordinates) bool {
	return c == other
}

func (c Coordinates) String() string {
	return fmt.Sprintf("[%d:%d:%d]", c.Galaxy, c.System, c.Position)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
