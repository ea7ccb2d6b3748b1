package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// PlanetID is a value object identifying one planet (player- or AI-owned)
type PlanetID struct {
	value string
}

// NewPlanetID creates a new PlanetID with a generated UUID
func NewPlanetID() PlanetID {
	return PlanetID{value: uuid.New().String()}
}

// NewPlanetIDFromString creates a PlanetID from an existing UUID string
func NewPlanetIDFromString(id string) (PlanetID, error) {
	if id == "" {
		return PlanetID{}, fmt.Errorf("planet_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return PlanetID{}, fmt.Errorf("invalid planet_id format: %w", err)
	}
	return PlanetID{value: id}, nil
}

// MustNewPlanetIDFromString creates a PlanetID from a string, panicking if invalid.
// Use this only when the ID is known valid (e.g., read back from the database).
func MustNewPlanetIDFromString(id string) PlanetID {
	pid, err := NewPlanetIDFromString(id)
	if err != nil {
		panic(err)
	}
	return pid
}

func (p PlanetID) String() string {
	return p.value
}

func (p PlanetID) IsZero() bool {
	return p.value == ""
}

// MissionID is a value object identifying one fleet mission
type MissionID struct {
	value string
}

// NewMissionID creates a new MissionID with a generated UUID
func NewMissionID() MissionID {
	return MissionID{value: uuid.New().String()}
}

// NewMissionIDFromString creates a MissionID from an existing UUID string
func NewMissionIDFromString(id string) (MissionID, error) {
	if id == "" {
		return MissionID{}, fmt.Errorf("mission_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return MissionID{}, fmt.Errorf("invalid mission_id format: %w", err)
	}
	return MissionID{value: id}, nil
}

// MustNewMissionIDFromString creates a MissionID from a string, panicking if invalid
func MustNewMissionIDFromString(id string) MissionID {
	mid, err := NewMissionIDFromString(id)
	if err != nil {
		panic(err)
	}
	return mid
}

func (m MissionID) String() string {
	return m.value
}

func (m MissionID) IsZero() bool {
	return m.value == ""
}
