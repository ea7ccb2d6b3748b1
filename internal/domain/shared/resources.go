package shared

import "fmt"

// Resources is an immutable value object holding the three accruable
// quantities. Energy is tracked separately as an integer balance since it is
// recomputed in whole rather than accrued over time.
type Resources struct {
	Metal     float64 `json:"metal"`
	Crystal   float64 `json:"crystal"`
	Deuterium float64 `json:"deuterium"`
}

// NewResources creates a resource vector
func NewResources(metal, crystal, deuterium float64) Resources {
	return Resources{Metal: metal, Crystal: crystal, Deuterium: deuterium}
}

// Add returns the component-wise sum
func (r Resources) Add(other Resources) Resources {
	return Resources{
		Metal:     r.Metal + other.Metal,
		Crystal:   r.Crystal + other.Crystal,
		Deuterium: r.Deuterium + other.Deuterium,
	}
}

// Sub returns the component-wise difference
func (r Resources) Sub(other Resources) Resources {
	return Resources{
		Metal:     r.Metal - other.Metal,
		Crystal:   r.Crystal - other.Crystal,
		Deuterium: r.Deuterium - other.Deuterium,
	}
}

// Scale returns the vector multiplied by a scalar factor
func (r Resources) Scale(factor float64) Resources {
	return Resources{
		Metal:     r.Metal * factor,
		Crystal:   r.Crystal * factor,
		Deuterium: r.Deuterium * factor,
	}
}

// Covers reports whether every component of the vector is at least as large
// as the corresponding component of cost
func (r Resources) Covers(cost Resources) bool {
	return r.Metal >= cost.Metal && r.Crystal >= cost.Crystal && r.Deuterium >= cost.Deuterium
}

// IsZero reports whether all components are zero
func (r Resources) IsZero() bool {
	return r.Metal == 0 && r.Crystal == 0 && r.Deuterium == 0
}

// Total returns the summed value of all components, used for cargo sizing
// and debris valuation
func (r Resources) Total() float64 {
	return r.Metal + r.Crystal + r.Deuterium
}

func (r Resources) String() string {
	return fmt.Sprintf("Resources(m=%.0f c=%.0f d=%.0f)", r.Metal, r.Crystal, r.Deuterium)
}
