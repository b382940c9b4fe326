package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/repositories"
)

// Built-in calibration constants. These are empirical rules of thumb and are
// reproduced as-is.
var defaultYarnWeights = []entities.YarnWeightSpec{
	{Weight: entities.Lace, YardsPerSquareInch: 1.60, YardsPerGram: 8.0, BaselineStitchesPerInch: 8.5, BaselineRowsPerInch: 11},
	{Weight: entities.Fingering, YardsPerSquareInch: 1.20, YardsPerGram: 4.0, BaselineStitchesPerInch: 7.5, BaselineRowsPerInch: 10},
	{Weight: entities.Sport, YardsPerSquareInch: 1.00, YardsPerGram: 3.0, BaselineStitchesPerInch: 6.0, BaselineRowsPerInch: 8},
	{Weight: entities.DK, YardsPerSquareInch: 0.90, YardsPerGram: 2.3, BaselineStitchesPerInch: 5.5, BaselineRowsPerInch: 7},
	{Weight: entities.Worsted, YardsPerSquareInch: 0.75, YardsPerGram: 2.0, BaselineStitchesPerInch: 4.5, BaselineRowsPerInch: 6},
	{Weight: entities.Bulky, YardsPerSquareInch: 0.50, YardsPerGram: 1.3, BaselineStitchesPerInch: 3.25, BaselineRowsPerInch: 4.5},
	{Weight: entities.SuperBulky, YardsPerSquareInch: 0.33, YardsPerGram: 0.8, BaselineStitchesPerInch: 2.25, BaselineRowsPerInch: 3},
	{Weight: entities.Jumbo, YardsPerSquareInch: 0.22, YardsPerGram: 0.5, BaselineStitchesPerInch: 1.5, BaselineRowsPerInch: 2},
}

var defaultShapeFactors = map[entities.ProjectShape]float64{
	entities.Rectangle: 1.0,
	entities.Triangle:  0.5,
	entities.Hat:       0.85,
	entities.Pair:      2.0,
	entities.Amigurumi: 0.6,
}

var defaultStitchPatterns = []entities.StitchPattern{
	{Name: "stockinette", Multiplier: 1.0},
	{Name: "single-crochet", Multiplier: 1.0},
	{Name: "garter", Multiplier: 1.10},
	{Name: "ribbing", Multiplier: 1.10},
	{Name: "seed", Multiplier: 1.10},
	{Name: "cables", Multiplier: 1.25},
	{Name: "heavy-cables", Multiplier: 1.35},
	{Name: "lace", Multiplier: 0.85},
	{Name: "brioche", Multiplier: 1.30},
	{Name: "stranded", Multiplier: 1.30},
}

var defaultNeedleSizes = []entities.NeedleSize{
	{Millimeters: 2.0, US: "0", UK: "14"},
	{Millimeters: 2.25, US: "1", UK: "13", Hook: "B-1"},
	{Millimeters: 2.75, US: "2", UK: "12", Hook: "C-2"},
	{Millimeters: 3.25, US: "3", UK: "10", Hook: "D-3"},
	{Millimeters: 3.5, US: "4", UK: "9", Hook: "E-4"},
	{Millimeters: 3.75, US: "5", UK: "9", Hook: "F-5"},
	{Millimeters: 4.0, US: "6", UK: "8", Hook: "G-6"},
	{Millimeters: 4.5, US: "7", UK: "7", Hook: "7"},
	{Millimeters: 5.0, US: "8", UK: "6", Hook: "H-8"},
	{Millimeters: 5.5, US: "9", UK: "5", Hook: "I-9"},
	{Millimeters: 6.0, US: "10", UK: "4", Hook: "J-10"},
	{Millimeters: 6.5, US: "10.5", UK: "3", Hook: "K-10.5"},
	{Millimeters: 8.0, US: "11", UK: "0", Hook: "L-11"},
	{Millimeters: 9.0, US: "13", UK: "00", Hook: "M/N-13"},
	{Millimeters: 10.0, US: "15", UK: "000", Hook: "N/P-15"},
	{Millimeters: 12.75, US: "17"},
	{Millimeters: 15.0, US: "19", Hook: "P/Q"},
	{Millimeters: 19.0, US: "35", Hook: "S"},
	{Millimeters: 25.0, US: "50", Hook: "U"},
}

// CalibrationRepository provides in-memory reference tables
type CalibrationRepository struct {
	mu           sync.RWMutex
	yarnWeights  []entities.YarnWeightSpec
	weightsMap   map[entities.YarnWeight]int
	shapeFactors map[entities.ProjectShape]float64
	patterns     []entities.StitchPattern
	patternsMap  map[string]int
	needleSizes  []entities.NeedleSize
}

// NewCalibrationRepository creates a repository pre-loaded with the
// built-in tables
func NewCalibrationRepository() *CalibrationRepository {
	r := &CalibrationRepository{
		yarnWeights:  make([]entities.YarnWeightSpec, 0, len(defaultYarnWeights)),
		weightsMap:   make(map[entities.YarnWeight]int, len(defaultYarnWeights)),
		shapeFactors: make(map[entities.ProjectShape]float64, len(defaultShapeFactors)),
		patterns:     make([]entities.StitchPattern, 0, len(defaultStitchPatterns)),
		patternsMap:  make(map[string]int, len(defaultStitchPatterns)),
	}
	for _, spec := range defaultYarnWeights {
		r.AddYarnWeight(spec)
	}
	for shape, factor := range defaultShapeFactors {
		r.shapeFactors[shape] = factor
	}
	for _, p := range defaultStitchPatterns {
		r.AddStitchPattern(p)
	}
	r.needleSizes = append(r.needleSizes, defaultNeedleSizes...)
	return r
}

// Verify interface compliance
var _ repositories.CalibrationRepository = (*CalibrationRepository)(nil)

// LoadYarnWeights overlays yarn weight rows; existing rows for the same
// weight are replaced
func (r *CalibrationRepository) LoadYarnWeights(specs []*entities.YarnWeightSpec) error {
	for _, spec := range specs {
		if err := validateYarnWeight(spec); err != nil {
			return err
		}
	}
	for _, spec := range specs {
		r.AddYarnWeight(*spec)
	}
	return nil
}

// AddYarnWeight adds or replaces the row for spec.Weight
func (r *CalibrationRepository) AddYarnWeight(spec entities.YarnWeightSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index, exists := r.weightsMap[spec.Weight]; exists {
		r.yarnWeights[index] = spec
		return
	}
	r.weightsMap[spec.Weight] = len(r.yarnWeights)
	r.yarnWeights = append(r.yarnWeights, spec)
}

// GetYarnWeight returns the calibration row for a yarn weight
func (r *CalibrationRepository) GetYarnWeight(weight entities.YarnWeight) (*entities.YarnWeightSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.weightsMap[weight]
	if !exists {
		return nil, fmt.Errorf("yarn weight %s: %w", weight, entities.ErrNotFound)
	}
	spec := r.yarnWeights[index]
	return &spec, nil
}

// GetAllYarnWeights returns all rows ordered from finest to heaviest
func (r *CalibrationRepository) GetAllYarnWeights() ([]*entities.YarnWeightSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]*entities.YarnWeightSpec, 0, len(r.yarnWeights))
	for i := range r.yarnWeights {
		spec := r.yarnWeights[i]
		specs = append(specs, &spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Weight < specs[j].Weight })
	return specs, nil
}

// SetShapeFactor overrides the area correction for a shape
func (r *CalibrationRepository) SetShapeFactor(shape entities.ProjectShape, factor float64) error {
	if factor <= 0 {
		return fmt.Errorf("shape factor for %s must be positive, got %g", shape, factor)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shapeFactors[shape] = factor
	return nil
}

// GetShapeFactor returns the area correction for a shape
func (r *CalibrationRepository) GetShapeFactor(shape entities.ProjectShape) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factor, exists := r.shapeFactors[shape]
	if !exists {
		return 0, fmt.Errorf("shape %s: %w", shape, entities.ErrNotFound)
	}
	return factor, nil
}

// AddStitchPattern adds or replaces a named stitch multiplier
func (r *CalibrationRepository) AddStitchPattern(p entities.StitchPattern) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.Name = patternKey(p.Name)
	if index, exists := r.patternsMap[p.Name]; exists {
		r.patterns[index] = p
		return
	}
	r.patternsMap[p.Name] = len(r.patterns)
	r.patterns = append(r.patterns, p)
}

// GetStitchPattern returns a stitch multiplier by name
func (r *CalibrationRepository) GetStitchPattern(name string) (*entities.StitchPattern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.patternsMap[patternKey(name)]
	if !exists {
		return nil, fmt.Errorf("stitch pattern %q: %w", name, entities.ErrNotFound)
	}
	p := r.patterns[index]
	return &p, nil
}

// GetAllStitchPatterns returns all stitch multipliers in insertion order
func (r *CalibrationRepository) GetAllStitchPatterns() ([]*entities.StitchPattern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var patterns []*entities.StitchPattern
	for i := range r.patterns {
		p := r.patterns[i]
		patterns = append(patterns, &p)
	}
	return patterns, nil
}

// LoadNeedleSizes replaces the needle table
func (r *CalibrationRepository) LoadNeedleSizes(sizes []entities.NeedleSize) error {
	for _, s := range sizes {
		if s.Millimeters <= 0 {
			return fmt.Errorf("needle size must be positive, got %g mm", s.Millimeters)
		}
	}
	sorted := append([]entities.NeedleSize(nil), sizes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Millimeters < sorted[j].Millimeters })

	r.mu.Lock()
	defer r.mu.Unlock()
	r.needleSizes = sorted
	return nil
}

// GetNeedleSizes returns a copy of the needle table ordered by diameter
func (r *CalibrationRepository) GetNeedleSizes() ([]entities.NeedleSize, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.NeedleSize(nil), r.needleSizes...), nil
}

func validateYarnWeight(spec *entities.YarnWeightSpec) error {
	if !spec.Weight.Valid() {
		return fmt.Errorf("%w: %d", entities.ErrUnknownYarnWeight, spec.Weight)
	}
	if spec.YardsPerSquareInch <= 0 {
		return fmt.Errorf("%s: yards per square inch must be positive, got %g", spec.Weight, spec.YardsPerSquareInch)
	}
	if spec.YardsPerGram <= 0 {
		return fmt.Errorf("%s: yards per gram must be positive, got %g", spec.Weight, spec.YardsPerGram)
	}
	if spec.BaselineStitchesPerInch <= 0 || spec.BaselineRowsPerInch <= 0 {
		return fmt.Errorf("%s: baseline gauge must be positive, got %gx%g",
			spec.Weight, spec.BaselineStitchesPerInch, spec.BaselineRowsPerInch)
	}
	return nil
}

func patternKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(strings.ReplaceAll(key, " ", "-"), "_", "-")
}
