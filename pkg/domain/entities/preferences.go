package entities

import "fmt"

// UnitSystem is the user's preferred measurement system.
type UnitSystem string

const (
	Imperial UnitSystem = "imperial"
	Metric   UnitSystem = "metric"
)

// ParseUnitSystem accepts "imperial" or "metric"; empty yields Imperial.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch normalizeKey(s) {
	case "", "imperial", "us":
		return Imperial, nil
	case "metric", "si":
		return Metric, nil
	default:
		return "", fmt.Errorf("%w: unit system %q", ErrInvalidInput, s)
	}
}

// Preferences is the small amount of user state kept between runs.
type Preferences struct {
	UnitSystem        UnitSystem `yaml:"unit_system" json:"unit_system"`
	DefaultYarnWeight string     `yaml:"default_yarn_weight,omitempty" json:"default_yarn_weight,omitempty"`
	// DefaultSkeinYards is always in yards, whatever UnitSystem is.
	DefaultSkeinYards float64        `yaml:"default_skein_yards,omitempty" json:"default_skein_yards,omitempty"`
	Counters          map[string]int `yaml:"counters,omitempty" json:"counters,omitempty"`
}

// DefaultPreferences returns the preferences used before anything is saved.
func DefaultPreferences() Preferences {
	return Preferences{
		UnitSystem: Imperial,
		Counters:   make(map[string]int),
	}
}

// Clone returns a deep copy so callers never alias the counter map.
func (p Preferences) Clone() Preferences {
	out := p
	out.Counters = make(map[string]int, len(p.Counters))
	for k, v := range p.Counters {
		out.Counters[k] = v
	}
	return out
}
