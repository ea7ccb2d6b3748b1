package catalog

import (
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// MaxTechnologyLevel caps every technology; research beyond it is refused
const MaxTechnologyLevel = 20

// DebrisFraction is the share of a destroyed unit's metal+crystal cost that
// ends up in the debris field after combat
const DebrisFraction = 0.3

// Catalog is the read-only lookup service for entity reference data.
// The core never mutates entries obtained from a Catalog.
type Catalog interface {
	// GetEntry returns the entry for an entity ID, or NotFoundError
	GetEntry(id EntityID) (*Entry, error)

	// EntriesByKind returns all entries of one kind, in a stable order
	EntriesByKind(kind Kind) []*Entry
}

// inMemoryCatalog is the standard Catalog implementation backed by a map
type inMemoryCatalog struct {
	entries map[EntityID]*Entry
	order   map[Kind][]EntityID
}

// NewCatalog builds a catalog from a list of entries. Later entries replace
// earlier ones with the same ID, which is how data-file overrides work.
func NewCatalog(entries []*Entry) Catalog {
	c := &inMemoryCatalog{
		entries: make(map[EntityID]*Entry, len(entries)),
		order:   make(map[Kind][]EntityID),
	}
	for _, e := range entries {
		if _, exists := c.entries[e.ID]; !exists {
			c.order[e.Kind] = append(c.order[e.Kind], e.ID)
		}
		c.entries[e.ID] = e
	}
	return c
}

func (c *inMemoryCatalog) GetEntry(id EntityID) (*Entry, error) {
	entry, ok := c.entries[id]
	if !ok {
		return nil, shared.NewNotFoundError("catalog entry", string(id))
	}
	return entry, nil
}

func (c *inMemoryCatalog) EntriesByKind(kind Kind) []*Entry {
	ids := c.order[kind]
	entries := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, c.entries[id])
	}
	return entries
}

// durationForCost derives a base build duration from an entry's base cost.
// One hour per 2500 units of metal+crystal, with a one second floor.
func durationForCost(cost shared.Resources) time.Duration {
	d := time.Duration((cost.Metal + cost.Crystal) / 2500 * float64(time.Hour))
	if d < time.Second {
		return time.Second
	}
	return d
}

// Default returns the built-in catalog table. Balance numbers here are the
// shipped defaults; deployments override them with a data file (see Load).
func Default() Catalog {
	return NewCatalog(defaultEntries())
}

func defaultEntries() []*Entry {
	var entries []*Entry

	building := func(id EntityID, cost shared.Resources, growth float64, reqs map[EntityID]int) *Entry {
		return &Entry{
			ID:           id,
			Kind:         KindBuilding,
			BaseCost:     cost,
			BaseDuration: durationForCost(cost),
			Growth:       growth,
			Requirements: reqs,
			EnergyGrowth: 1.1,
		}
	}
	tech := func(id EntityID, cost shared.Resources, reqs map[EntityID]int) *Entry {
		return &Entry{
			ID:           id,
			Kind:         KindTechnology,
			BaseCost:     cost,
			BaseDuration: durationForCost(cost),
			Growth:       2.0,
			Requirements: reqs,
		}
	}
	ship := func(id EntityID, cost shared.Resources, stats ShipStats, reqs map[EntityID]int) *Entry {
		return &Entry{
			ID:           id,
			Kind:         KindShip,
			BaseCost:     cost,
			BaseDuration: durationForCost(cost),
			Requirements: reqs,
			Stats:        stats,
		}
	}
	defense := func(id EntityID, cost shared.Resources, stats ShipStats, unique bool, reqs map[EntityID]int) *Entry {
		return &Entry{
			ID:              id,
			Kind:            KindDefense,
			BaseCost:        cost,
			BaseDuration:    durationForCost(cost),
			Requirements:    reqs,
			Stats:           stats,
			UniquePerPlanet: unique,
		}
	}

	// Production and storage buildings
	metalMine := building(MetalMine, shared.NewResources(60, 15, 0), 1.5, nil)
	metalMine.BaseProduction = shared.NewResources(30, 0, 0)
	metalMine.BaseEnergyConsumed = 10
	entries = append(entries, metalMine)

	crystalMine := building(CrystalMine, shared.NewResources(48, 24, 0), 1.6, nil)
	crystalMine.BaseProduction = shared.NewResources(0, 20, 0)
	crystalMine.BaseEnergyConsumed = 10
	entries = append(entries, crystalMine)

	deutSynth := building(DeuteriumSynthesizer, shared.NewResources(225, 75, 0), 1.5, nil)
	deutSynth.BaseProduction = shared.NewResources(0, 0, 10)
	deutSynth.BaseEnergyConsumed = 20
	entries = append(entries, deutSynth)

	solarPlant := building(SolarPlant, shared.NewResources(75, 30, 0), 1.5, nil)
	solarPlant.BaseEnergyProduced = 20
	entries = append(entries, solarPlant)

	metalStorage := building(MetalStorage, shared.NewResources(1000, 0, 0), 2.0, nil)
	metalStorage.BaseStorageCapacity = 10000
	entries = append(entries, metalStorage)

	crystalStorage := building(CrystalStorage, shared.NewResources(1000, 500, 0), 2.0, nil)
	crystalStorage.BaseStorageCapacity = 10000
	entries = append(entries, crystalStorage)

	deutTank := building(DeuteriumTank, shared.NewResources(1000, 1000, 0), 2.0, nil)
	deutTank.BaseStorageCapacity = 10000
	entries = append(entries, deutTank)

	// Facilities
	entries = append(entries,
		building(RoboticsFactory, shared.NewResources(400, 120, 200), 2.0, nil),
		building(Shipyard, shared.NewResources(400, 200, 100), 2.0, map[EntityID]int{RoboticsFactory: 2}),
		building(ResearchLab, shared.NewResources(200, 400, 200), 2.0, nil),
		building(NaniteFactory, shared.NewResources(1000000, 500000, 100000), 2.0, map[EntityID]int{
			RoboticsFactory: 10,
			ComputerTech:    10,
		}),
	)

	// Technologies
	entries = append(entries,
		tech(EnergyTech, shared.NewResources(0, 800, 400), map[EntityID]int{ResearchLab: 1}),
		tech(ComputerTech, shared.NewResources(0, 400, 600), map[EntityID]int{ResearchLab: 1}),
		tech(ArmourTech, shared.NewResources(1000, 0, 0), map[EntityID]int{ResearchLab: 2}),
		tech(WeaponsTech, shared.NewResources(800, 200, 0), map[EntityID]int{ResearchLab: 4}),
		tech(ShieldingTech, shared.NewResources(200, 600, 0), map[EntityID]int{ResearchLab: 6, EnergyTech: 3}),
		tech(EspionageTech, shared.NewResources(200, 1000, 200), map[EntityID]int{ResearchLab: 3}),
		tech(CombustionDrive, shared.NewResources(400, 0, 600), map[EntityID]int{ResearchLab: 1, EnergyTech: 1}),
		tech(ImpulseDrive, shared.NewResources(2000, 4000, 600), map[EntityID]int{ResearchLab: 2, EnergyTech: 1}),
	)

	// Ships
	entries = append(entries,
		ship(SmallCargo, shared.NewResources(2000, 2000, 0),
			ShipStats{Speed: 5000, Cargo: 5000, FuelRate: 10, Attack: 5, Shield: 10, Hull: 400},
			map[EntityID]int{Shipyard: 2, CombustionDrive: 2}),
		ship(LargeCargo, shared.NewResources(6000, 6000, 0),
			ShipStats{Speed: 7500, Cargo: 25000, FuelRate: 50, Attack: 5, Shield: 25, Hull: 1200},
			map[EntityID]int{Shipyard: 4, CombustionDrive: 6}),
		ship(LightFighter, shared.NewResources(3000, 1000, 0),
			ShipStats{Speed: 12500, Cargo: 50, FuelRate: 20, Attack: 50, Shield: 10, Hull: 400},
			map[EntityID]int{Shipyard: 1, CombustionDrive: 1}),
		ship(HeavyFighter, shared.NewResources(6000, 4000, 0),
			ShipStats{Speed: 10000, Cargo: 100, FuelRate: 75, Attack: 150, Shield: 25, Hull: 1000},
			map[EntityID]int{Shipyard: 3, ArmourTech: 2, ImpulseDrive: 2}),
		ship(Cruiser, shared.NewResources(20000, 7000, 2000),
			ShipStats{Speed: 15000, Cargo: 800, FuelRate: 300, Attack: 400, Shield: 50, Hull: 2700},
			map[EntityID]int{Shipyard: 5, ImpulseDrive: 4}),
		ship(Battleship, shared.NewResources(45000, 15000, 0),
			ShipStats{Speed: 10000, Cargo: 1500, FuelRate: 500, Attack: 1000, Shield: 200, Hull: 6000},
			map[EntityID]int{Shipyard: 7, ImpulseDrive: 4}),
		ship(ColonyShip, shared.NewResources(10000, 20000, 10000),
			ShipStats{Speed: 2500, Cargo: 7500, FuelRate: 1000, Attack: 50, Shield: 100, Hull: 3000},
			map[EntityID]int{Shipyard: 4, ImpulseDrive: 3}),
		ship(EspionageProbe, shared.NewResources(0, 1000, 0),
			ShipStats{Speed: 100000, Cargo: 5, FuelRate: 1, Attack: 0, Shield: 0.01, Hull: 100},
			map[EntityID]int{Shipyard: 3, EspionageTech: 2}),
		ship(Recycler, shared.NewResources(10000, 6000, 2000),
			ShipStats{Speed: 2000, Cargo: 20000, FuelRate: 300, Attack: 1, Shield: 10, Hull: 1600},
			map[EntityID]int{Shipyard: 4, CombustionDrive: 6, ShieldingTech: 2}),
	)

	// Defenses
	entries = append(entries,
		defense(RocketLauncher, shared.NewResources(2000, 0, 0),
			ShipStats{Attack: 80, Shield: 20, Hull: 200}, false,
			map[EntityID]int{Shipyard: 1}),
		defense(LightLaser, shared.NewResources(1500, 500, 0),
			ShipStats{Attack: 100, Shield: 25, Hull: 200}, false,
			map[EntityID]int{Shipyard: 2, EnergyTech: 1}),
		defense(HeavyLaser, shared.NewResources(6000, 2000, 0),
			ShipStats{Attack: 250, Shield: 100, Hull: 800}, false,
			map[EntityID]int{Shipyard: 4, EnergyTech: 3}),
		defense(GaussCannon, shared.NewResources(20000, 15000, 2000),
			ShipStats{Attack: 1100, Shield: 200, Hull: 3500}, false,
			map[EntityID]int{Shipyard: 6, WeaponsTech: 3}),
		defense(IonCannon, shared.NewResources(5000, 3000, 0),
			ShipStats{Attack: 150, Shield: 500, Hull: 800}, false,
			map[EntityID]int{Shipyard: 4}),
		defense(PlasmaTurret, shared.NewResources(50000, 50000, 30000),
			ShipStats{Attack: 3000, Shield: 300, Hull: 10000}, false,
			map[EntityID]int{Shipyard: 8}),
		defense(SmallShieldDome, shared.NewResources(10000, 10000, 0),
			ShipStats{Attack: 1, Shield: 2000, Hull: 2000}, true,
			map[EntityID]int{Shipyard: 1, ShieldingTech: 2}),
		defense(LargeShieldDome, shared.NewResources(50000, 50000, 0),
			ShipStats{Attack: 1, Shield: 10000, Hull: 10000}, true,
			map[EntityID]int{Shipyard: 6, ShieldingTech: 6}),
	)

	return entries
}
