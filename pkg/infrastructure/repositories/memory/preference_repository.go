package memory

import (
	"sync"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/repositories"
)

// PreferenceRepository keeps preferences in memory for the life of the process
type PreferenceRepository struct {
	mu    sync.Mutex
	prefs entities.Preferences
}

// NewPreferenceRepository creates a repository holding the default preferences
func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{prefs: entities.DefaultPreferences()}
}

// Verify interface compliance
var _ repositories.PreferenceRepository = (*PreferenceRepository)(nil)

// Load returns a copy of the stored preferences
func (r *PreferenceRepository) Load() (entities.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prefs.Clone(), nil
}

// Save replaces the stored preferences
func (r *PreferenceRepository) Save(prefs entities.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs = prefs.Clone()
	return nil
}
