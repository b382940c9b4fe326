package entities

import (
	"fmt"
	"strings"
)

// YarnWeight is a standardized yarn-weight category, ordered from finest
// to heaviest. The numeric value matches the Craft Yarn Council number.
type YarnWeight int

const (
	Lace YarnWeight = iota
	Fingering
	Sport
	DK
	Worsted
	Bulky
	SuperBulky
	Jumbo
)

// NoYarnWeight marks a project whose yarn weight has not been chosen yet.
const NoYarnWeight YarnWeight = -1

// AllYarnWeights lists every category in ascending order.
var AllYarnWeights = []YarnWeight{Lace, Fingering, Sport, DK, Worsted, Bulky, SuperBulky, Jumbo}

// String method for YarnWeight enum
func (w YarnWeight) String() string {
	switch w {
	case Lace:
		return "lace"
	case Fingering:
		return "fingering"
	case Sport:
		return "sport"
	case DK:
		return "dk"
	case Worsted:
		return "worsted"
	case Bulky:
		return "bulky"
	case SuperBulky:
		return "super-bulky"
	case Jumbo:
		return "jumbo"
	default:
		return "unknown"
	}
}

// Valid reports whether w is a known category.
func (w YarnWeight) Valid() bool {
	return w >= Lace && w <= Jumbo
}

var yarnWeightAliases = map[string]YarnWeight{
	"lace":        Lace,
	"0":           Lace,
	"cobweb":      Lace,
	"fingering":   Fingering,
	"sock":        Fingering,
	"super-fine":  Fingering,
	"1":           Fingering,
	"sport":       Sport,
	"fine":        Sport,
	"2":           Sport,
	"dk":          DK,
	"light":       DK,
	"3":           DK,
	"worsted":     Worsted,
	"aran":        Worsted,
	"medium":      Worsted,
	"4":           Worsted,
	"bulky":       Bulky,
	"chunky":      Bulky,
	"5":           Bulky,
	"super-bulky": SuperBulky,
	"6":           SuperBulky,
	"jumbo":       Jumbo,
	"7":           Jumbo,
}

// ParseYarnWeight accepts category names, common aliases and CYC numbers.
func ParseYarnWeight(s string) (YarnWeight, error) {
	key := normalizeKey(s)
	if w, ok := yarnWeightAliases[key]; ok {
		return w, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownYarnWeight, s)
}

// ProjectShape selects the area correction applied before yardage lookup.
type ProjectShape int

const (
	Rectangle ProjectShape = iota
	Triangle
	Hat
	Pair
	Amigurumi
)

// AllProjectShapes lists every shape.
var AllProjectShapes = []ProjectShape{Rectangle, Triangle, Hat, Pair, Amigurumi}

// String method for ProjectShape enum
func (s ProjectShape) String() string {
	switch s {
	case Rectangle:
		return "rectangle"
	case Triangle:
		return "triangle"
	case Hat:
		return "hat"
	case Pair:
		return "pair"
	case Amigurumi:
		return "amigurumi"
	default:
		return "unknown"
	}
}

var projectShapeAliases = map[string]ProjectShape{
	"rectangle": Rectangle,
	"blanket":   Rectangle,
	"scarf":     Rectangle,
	"triangle":  Triangle,
	"shawl":     Triangle,
	"hat":       Hat,
	"tube":      Hat,
	"pair":      Pair,
	"socks":     Pair,
	"mittens":   Pair,
	"amigurumi": Amigurumi,
	"toy":       Amigurumi,
}

// ParseProjectShape accepts shape names and a few project-type aliases.
// The empty string yields Rectangle.
func ParseProjectShape(s string) (ProjectShape, error) {
	key := normalizeKey(s)
	if key == "" {
		return Rectangle, nil
	}
	if shape, ok := projectShapeAliases[key]; ok {
		return shape, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// YarnWeightSpec is the calibration row for one yarn weight.
type YarnWeightSpec struct {
	Weight                  YarnWeight
	YardsPerSquareInch      float64
	YardsPerGram            float64
	BaselineStitchesPerInch float64
	BaselineRowsPerInch     float64
}

// StitchPattern is a named stitch multiplier relative to a stockinette or
// single-crochet baseline of 1.0.
type StitchPattern struct {
	Name       string
	Multiplier float64
}

// NeedleSize is one row of the needle and hook conversion table.
type NeedleSize struct {
	Millimeters float64 `json:"mm"`
	US          string  `json:"us,omitempty"`
	UK          string  `json:"uk,omitempty"`
	Hook        string  `json:"hook,omitempty"`
}

func normalizeKey(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	key = strings.ReplaceAll(key, " ", "-")
	return key
}
