package universe

import (
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// Universe is the coordinate/occupancy lookup consumed by the fleet and AI
// engines. The core only asks "does this slot exist and is it taken";
// map generation beyond that lives outside the simulation.
type Universe interface {
	// Exists reports whether the coordinates fall inside the universe grid
	Exists(c shared.Coordinates) bool

	// IsOccupied reports whether a slot hosts a planet
	IsOccupied(c shared.Coordinates) bool

	// Occupant returns the planet occupying a slot, if any
	Occupant(c shared.Coordinates) (*planet.Planet, bool)

	// FreeSlotsNear returns up to limit unoccupied slots close to c,
	// nearest first. Used by colonization.
	FreeSlotsNear(c shared.Coordinates, limit int) []shared.Coordinates
}

// Grid is the standard Universe implementation: a fixed-size grid whose
// occupancy is answered by the planet registry.
type Grid struct {
	galaxies  int
	systems   int
	positions int
	registry  *planet.Registry
}

// NewGrid creates a universe grid over the given registry
func NewGrid(galaxies, systems, positions int, registry *planet.Registry) *Grid {
	return &Grid{
		galaxies:  galaxies,
		systems:   systems,
		positions: positions,
		registry:  registry,
	}
}

func (g *Grid) Exists(c shared.Coordinates) bool {
	return c.Galaxy >= 1 && c.Galaxy <= g.galaxies &&
		c.System >= 1 && c.System <= g.systems &&
		c.Position >= 1 && c.Position <= g.positions
}

func (g *Grid) IsOccupied(c shared.Coordinates) bool {
	return g.registry.IsOccupied(c)
}

func (g *Grid) Occupant(c shared.Coordinates) (*planet.Planet, bool) {
	return g.registry.ByCoordinates(c)
}

// FreeSlotsNear scans the home system first, then neighboring systems,
// widening outward until limit slots are found or the search ring leaves
// the grid.
func (g *Grid) FreeSlotsNear(c shared.Coordinates, limit int) []shared.Coordinates {
	if limit <= 0 {
		return nil
	}

	var found []shared.Coordinates
	appendFree := func(slot shared.Coordinates) bool {
		if !g.Exists(slot) || g.IsOccupied(slot) || slot == c {
			return false
		}
		found = append(found, slot)
		return len(found) >= limit
	}

	for ring := 0; ring <= g.systems; ring++ {
		systems := []int{c.System - ring, c.System + ring}
		if ring == 0 {
			systems = []int{c.System}
		}
		anyInGrid := false
		for _, system := range systems {
			if system < 1 || system > g.systems {
				continue
			}
			anyInGrid = true
			for position := 1; position <= g.positions; position++ {
				if appendFree(shared.Coordinates{Galaxy: c.Galaxy, System: system, Position: position}) {
					return found
				}
			}
		}
		if ring > 0 && !anyInGrid {
			break
		}
	}
	return found
}
