package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Request describes calculations to run from a file. Each section is
// optional; an empty file is a valid request that computes nothing.
type Request struct {
	Solve    *SolveRequest    `yaml:"solve"`
	Estimate *EstimateRequest `yaml:"estimate"`
	CastOn   *CastOnRequest   `yaml:"cast_on"`
}

// SolveRequest mirrors the solve command flags.
type SolveRequest struct {
	Rules        []string `yaml:"rules"`
	MinWidth     int      `yaml:"min_width"`
	MaxWidth     int      `yaml:"max_width"`
	EdgeStitches int      `yaml:"edge_stitches"`
}

// GaugeRequest is a swatch measurement.
type GaugeRequest struct {
	Stitches float64 `yaml:"stitches"`
	Rows     float64 `yaml:"rows"`
}

// EstimateRequest mirrors the estimate command flags.
type EstimateRequest struct {
	Name             string        `yaml:"name"`
	Width            float64       `yaml:"width"`
	Height           float64       `yaml:"height"`
	Units            string        `yaml:"units"`
	YarnWeight       string        `yaml:"yarn_weight"`
	Shape            string        `yaml:"shape"`
	Pattern          string        `yaml:"pattern"`
	StitchMultiplier float64       `yaml:"stitch_multiplier"`
	SkeinLength      float64       `yaml:"skein_length"`
	SkeinWeight      float64       `yaml:"skein_weight"`
	Gauge            *GaugeRequest `yaml:"gauge"`
}

// CastOnRequest mirrors the cast-on command flags.
type CastOnRequest struct {
	Width           float64  `yaml:"width"`
	Units           string   `yaml:"units"`
	StitchesPerUnit float64  `yaml:"stitches_per_unit"`
	Rules           []string `yaml:"rules"`
	EdgeStitches    int      `yaml:"edge_stitches"`
}

// LoadRequest reads the request file at path.
func LoadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	req := &Request{}
	if err := yaml.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return req, nil
}

// validateRequest checks structure only; numeric domain checks belong to
// the calculators so that half-finished files still load.
func validateRequest(req *Request) error {
	if req.Solve != nil && len(req.Solve.Rules) == 0 {
		return fmt.Errorf("solve.rules: at least one rule is required")
	}
	if req.CastOn != nil && len(req.CastOn.Rules) == 0 {
		return fmt.Errorf("cast_on.rules: at least one rule is required")
	}
	return nil
}
