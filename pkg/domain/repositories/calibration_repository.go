package repositories

import "github.com/vsinha/fibercalc/pkg/domain/entities"

// CalibrationRepository serves the read-only reference tables the
// estimators are calibrated against.
type CalibrationRepository interface {
	GetYarnWeight(weight entities.YarnWeight) (*entities.YarnWeightSpec, error)
	GetAllYarnWeights() ([]*entities.YarnWeightSpec, error)
	GetShapeFactor(shape entities.ProjectShape) (float64, error)
	GetStitchPattern(name string) (*entities.StitchPattern, error)
	GetAllStitchPatterns() ([]*entities.StitchPattern, error)
	GetNeedleSizes() ([]entities.NeedleSize, error)
}
