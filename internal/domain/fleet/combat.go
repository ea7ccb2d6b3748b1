package fleet

import (
	"math"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// combatSide aggregates one side's firepower and durability
type combatSide struct {
	power      float64
	durability float64
}

// combatResult carries everything an attack resolution needs to settle:
// per-type losses for both sides, the debris left behind, and who won.
type combatResult struct {
	outcome        CombatOutcome
	attackerLosses map[catalog.EntityID]int
	defenderShips  map[catalog.EntityID]int
	defenderDefs   map[catalog.EntityID]int
	debris         shared.Resources
}

// resolveCombat compares the aggregate attack of each side against the
// aggregate shield+hull of the other and converts the resulting damage
// fractions into proportional unit losses. A fixed share of every destroyed
// unit's metal and crystal cost becomes debris.
//
// The exact balance of the formula is tuning data; the contract is that
// losses land on both sides, debris accumulates at the defender's
// coordinates and the resolution runs exactly once per mission.
func resolveCombat(
	attackerShips map[catalog.EntityID]int,
	defenderShips map[catalog.EntityID]int,
	defenderDefs map[catalog.EntityID]int,
	cat catalog.Catalog,
) combatResult {
	attacker := aggregateSide(cat, attackerShips)
	defender := aggregateSide(cat, defenderShips, defenderDefs)

	defenderDamage := damageFraction(attacker.power, defender.durability)
	attackerDamage := damageFraction(defender.power, attacker.durability)

	result := combatResult{
		attackerLosses: applyLosses(attackerShips, attackerDamage),
		defenderShips:  applyLosses(defenderShips, defenderDamage),
		defenderDefs:   applyLosses(defenderDefs, defenderDamage),
	}

	switch {
	case defenderDamage > attackerDamage:
		result.outcome = OutcomeAttackerWon
	case attackerDamage > defenderDamage:
		result.outcome = OutcomeDefenderWon
	default:
		result.outcome = OutcomeDraw
	}

	result.debris = debrisValue(cat, result.attackerLosses).
		Add(debrisValue(cat, result.defenderShips)).
		Add(debrisValue(cat, result.defenderDefs))
	// Debris holds no deuterium
	result.debris.Deuterium = 0

	return result
}

func aggregateSide(cat catalog.Catalog, unitSets ...map[catalog.EntityID]int) combatSide {
	var side combatSide
	for _, units := range unitSets {
		for id, count := range units {
			entry, err := cat.GetEntry(id)
			if err != nil {
				continue
			}
			side.power += entry.Stats.Attack * float64(count)
			side.durability += (entry.Stats.Shield + entry.Stats.Hull) * float64(count)
		}
	}
	return side
}

// damageFraction maps incoming firepower against durability to a loss
// fraction in [0, 1]
func damageFraction(power, durability float64) float64 {
	if durability <= 0 {
		if power > 0 {
			return 1
		}
		return 0
	}
	return math.Min(1, power/durability)
}

// applyLosses converts a damage fraction into whole destroyed units per type
func applyLosses(units map[catalog.EntityID]int, fraction float64) map[catalog.EntityID]int {
	losses := make(map[catalog.EntityID]int)
	if fraction <= 0 {
		return losses
	}
	for id, count := range units {
		destroyed := int(math.Floor(float64(count) * fraction))
		if fraction >= 1 {
			destroyed = count
		}
		if destroyed > 0 {
			losses[id] = destroyed
		}
	}
	return losses
}

// debrisValue sums the recoverable share of destroyed units' build cost
func debrisValue(cat catalog.Catalog, losses map[catalog.EntityID]int) shared.Resources {
	var total shared.Resources
	for id, count := range losses {
		entry, err := cat.GetEntry(id)
		if err != nil {
			continue
		}
		total = total.Add(entry.BaseCost.Scale(float64(count) * catalog.DebrisFraction))
	}
	return total
}
