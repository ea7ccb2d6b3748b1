package fleet

import (
	"fmt"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// MissionKind is the closed enumeration of fleet mission types
type MissionKind string

const (
	MissionAttack    MissionKind = "ATTACK"
	MissionTransport MissionKind = "TRANSPORT"
	MissionDeploy    MissionKind = "DEPLOY"
	MissionEspionage MissionKind = "ESPIONAGE"
	MissionColonize  MissionKind = "COLONIZE"
	MissionHarvest   MissionKind = "HARVEST"
)

// IsValid returns true if the kind is one of the defined constants
func (k MissionKind) IsValid() bool {
	switch k {
	case MissionAttack, MissionTransport, MissionDeploy, MissionEspionage, MissionColonize, MissionHarvest:
		return true
	}
	return false
}

// IsStationary reports whether arrival parks the fleet at the target
// (Holding) instead of turning it around
func (k MissionKind) IsStationary() bool {
	return k == MissionEspionage
}

// MissionStatus tracks where a mission is in its lifecycle
type MissionStatus string

const (
	// MissionStatusFlight means the fleet is outbound toward the target
	MissionStatusFlight MissionStatus = "FLIGHT"

	// MissionStatusReturn means the fleet is flying home
	MissionStatusReturn MissionStatus = "RETURN"

	// MissionStatusHolding means the fleet is parked at the target
	MissionStatusHolding MissionStatus = "HOLDING"
)

// Mission is a dispatched group of ships with a travel schedule and an
// arrival outcome. The ships it carries are checked out of the dispatching
// planet's inventory for the mission's whole lifetime and reconciled back
// exactly once, at return.
//
// arrival <= returnAt holds by construction: the return leg mirrors the
// outbound leg and is fixed at dispatch time.
type Mission struct {
	id     shared.MissionID
	kind   MissionKind
	origin shared.PlanetID

	originCoords shared.Coordinates
	target       shared.Coordinates

	ships map[catalog.EntityID]int
	cargo shared.Resources
	fuel  float64

	departure time.Time
	arrival   time.Time
	returnAt  time.Time

	status MissionStatus
}

// ReconstructMission restores a mission from persistence
func ReconstructMission(
	id shared.MissionID,
	kind MissionKind,
	origin shared.PlanetID,
	originCoords shared.Coordinates,
	target shared.Coordinates,
	ships map[catalog.EntityID]int,
	cargo shared.Resources,
	fuel float64,
	departure, arrival, returnAt time.Time,
	status MissionStatus,
) *Mission {
	return &Mission{
		id:           id,
		kind:         kind,
		origin:       origin,
		originCoords: originCoords,
		target:       target,
		ships:        ships,
		cargo:        cargo,
		fuel:         fuel,
		departure:    departure,
		arrival:      arrival,
		returnAt:     returnAt,
		status:       status,
	}
}

// Getters

func (m *Mission) ID() shared.MissionID {
	return m.id
}

func (m *Mission) Kind() MissionKind {
	return m.kind
}

func (m *Mission) Origin() shared.PlanetID {
	return m.origin
}

func (m *Mission) OriginCoordinates() shared.Coordinates {
	return m.originCoords
}

func (m *Mission) Target() shared.Coordinates {
	return m.target
}

// Ships returns a copy of the checked-out ship counts
func (m *Mission) Ships() map[catalog.EntityID]int {
	ships := make(map[catalog.EntityID]int, len(m.ships))
	for id, count := range m.ships {
		ships[id] = count
	}
	return ships
}

// ShipTotal returns the number of ships in the group
func (m *Mission) ShipTotal() int {
	total := 0
	for _, count := range m.ships {
		total += count
	}
	return total
}

func (m *Mission) Cargo() shared.Resources {
	return m.cargo
}

func (m *Mission) Fuel() float64 {
	return m.fuel
}

func (m *Mission) Departure() time.Time {
	return m.departure
}

func (m *Mission) Arrival() time.Time {
	return m.arrival
}

func (m *Mission) ReturnAt() time.Time {
	return m.returnAt
}

func (m *Mission) Status() MissionStatus {
	return m.status
}

func (m *Mission) String() string {
	return fmt.Sprintf("Mission[%s %s %s->%s, %d ships, %s]",
		m.id, m.kind, m.originCoords, m.target, m.ShipTotal(), m.status)
}
