package catalog

// Kind is the closed enumeration of buildable entity categories. Core logic
// switches over Kind rather than raw strings so the compiler can flag
// unhandled categories.
type Kind string

const (
	KindBuilding   Kind = "BUILDING"
	KindTechnology Kind = "TECHNOLOGY"
	KindShip       Kind = "SHIP"
	KindDefense    Kind = "DEFENSE"
)

// IsValid returns true if the kind is one of the defined constants
func (k Kind) IsValid() bool {
	switch k {
	case KindBuilding, KindTechnology, KindShip, KindDefense:
		return true
	}
	return false
}

// AllKinds returns every defined kind, in a stable order
func AllKinds() []Kind {
	return []Kind{KindBuilding, KindTechnology, KindShip, KindDefense}
}

// EntityID names one entity type in the catalog. The set is closed: the
// catalog may override numbers from data files but cannot invent new IDs.
type EntityID string

// Buildings
const (
	MetalMine            EntityID = "METAL_MINE"
	CrystalMine          EntityID = "CRYSTAL_MINE"
	DeuteriumSynthesizer EntityID = "DEUTERIUM_SYNTHESIZER"
	SolarPlant           EntityID = "SOLAR_PLANT"
	MetalStorage         EntityID = "METAL_STORAGE"
	CrystalStorage       EntityID = "CRYSTAL_STORAGE"
	DeuteriumTank        EntityID = "DEUTERIUM_TANK"
	RoboticsFactory      EntityID = "ROBOTICS_FACTORY"
	Shipyard             EntityID = "SHIPYARD"
	ResearchLab          EntityID = "RESEARCH_LAB"
	NaniteFactory        EntityID = "NANITE_FACTORY"
)

// Technologies
const (
	EnergyTech      EntityID = "ENERGY_TECH"
	ComputerTech    EntityID = "COMPUTER_TECH"
	WeaponsTech     EntityID = "WEAPONS_TECH"
	ShieldingTech   EntityID = "SHIELDING_TECH"
	ArmourTech      EntityID = "ARMOUR_TECH"
	EspionageTech   EntityID = "ESPIONAGE_TECH"
	CombustionDrive EntityID = "COMBUSTION_DRIVE"
	ImpulseDrive    EntityID = "IMPULSE_DRIVE"
)

// Ships
const (
	LightFighter   EntityID = "LIGHT_FIGHTER"
	HeavyFighter   EntityID = "HEAVY_FIGHTER"
	Cruiser        EntityID = "CRUISER"
	Battleship     EntityID = "BATTLESHIP"
	SmallCargo     EntityID = "SMALL_CARGO"
	LargeCargo     EntityID = "LARGE_CARGO"
	ColonyShip     EntityID = "COLONY_SHIP"
	EspionageProbe EntityID = "ESPIONAGE_PROBE"
	Recycler       EntityID = "RECYCLER"
)

// Defenses
const (
	RocketLauncher  EntityID = "ROCKET_LAUNCHER"
	LightLaser      EntityID = "LIGHT_LASER"
	HeavyLaser      EntityID = "HEAVY_LASER"
	GaussCannon     EntityID = "GAUSS_CANNON"
	IonCannon       EntityID = "ION_CANNON"
	PlasmaTurret    EntityID = "PLASMA_TURRET"
	SmallShieldDome EntityID = "SMALL_SHIELD_DOME"
	LargeShieldDome EntityID = "LARGE_SHIELD_DOME"
)

func (e EntityID) String() string {
	return string(e)
}
