package repositories

import "github.com/vsinha/fibercalc/pkg/domain/entities"

// PreferenceRepository persists user preferences. Writes replace the whole
// record; the last write wins.
type PreferenceRepository interface {
	Load() (entities.Preferences, error)
	Save(prefs entities.Preferences) error
}
