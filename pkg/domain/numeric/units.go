package numeric

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownUnit is returned by ParseUnit for unrecognised names.
var ErrUnknownUnit = errors.New("unknown unit")

// ErrIncompatibleUnits is returned when converting between dimensions,
// for example yards to grams.
var ErrIncompatibleUnits = errors.New("incompatible units")

// Unit is a length or mass unit.
type Unit int

const (
	Inches Unit = iota
	Centimeters
	Yards
	Meters
	Grams
	Ounces
)

// Dimension groups units that convert into each other.
type Dimension int

const (
	ShortLength Dimension = iota
	LongLength
	Mass
)

// Exact conversion ratios. Each unit is expressed as a multiple of its
// dimension's metric base (centimeters, meters, grams) so a conversion is one
// exact multiplication followed by a single division.
var (
	centimetersPerInch = decimal.RequireFromString("2.54")
	metersPerYard      = decimal.RequireFromString("0.9144")
	gramsPerOunce      = decimal.RequireFromString("28.349523125")
	one                = decimal.NewFromInt(1)
)

type unitInfo struct {
	name      string
	dimension Dimension
	// toBase multiplies a value in this unit to get the base unit.
	toBase decimal.Decimal
}

var units = map[Unit]unitInfo{
	Inches:      {"in", ShortLength, centimetersPerInch},
	Centimeters: {"cm", ShortLength, one},
	Yards:       {"yd", LongLength, metersPerYard},
	Meters:      {"m", LongLength, one},
	Grams:       {"g", Mass, one},
	Ounces:      {"oz", Mass, gramsPerOunce},
}

var unitAliases = map[string]Unit{
	"in": Inches, "inch": Inches, "inches": Inches, `"`: Inches,
	"cm": Centimeters, "centimeter": Centimeters, "centimeters": Centimeters, "centimetre": Centimeters, "centimetres": Centimeters,
	"yd": Yards, "yds": Yards, "yard": Yards, "yards": Yards,
	"m": Meters, "meter": Meters, "meters": Meters, "metre": Meters, "metres": Meters,
	"g": Grams, "gram": Grams, "grams": Grams,
	"oz": Ounces, "ounce": Ounces, "ounces": Ounces,
}

// String returns the unit's short symbol.
func (u Unit) String() string {
	if info, ok := units[u]; ok {
		return info.name
	}
	return "unknown"
}

// Dimension returns the dimension the unit measures.
func (u Unit) Dimension() Dimension {
	return units[u].dimension
}

// ParseUnit accepts short symbols and spelled-out names.
func ParseUnit(s string) (Unit, error) {
	if u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// ConvertDecimal converts value between two units of the same dimension.
func ConvertDecimal(value decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	fi, ok := units[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrUnknownUnit, from)
	}
	ti, ok := units[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrUnknownUnit, to)
	}
	if fi.dimension != ti.dimension {
		return decimal.Zero, fmt.Errorf("%w: %s to %s", ErrIncompatibleUnits, fi.name, ti.name)
	}
	if from == to {
		return value, nil
	}
	return value.Mul(fi.toBase).Div(ti.toBase), nil
}

// Convert is ConvertDecimal for float64 values. Converting between
// different dimensions returns 0; use ConvertDecimal to see the error.
func Convert(value float64, from, to Unit) float64 {
	out, err := ConvertDecimal(decimal.NewFromFloat(value), from, to)
	if err != nil {
		return 0
	}
	return out.InexactFloat64()
}

// InchesToCentimeters converts a length in inches to centimeters.
func InchesToCentimeters(in float64) float64 { return Convert(in, Inches, Centimeters) }

// CentimetersToInches converts a length in centimeters to inches.
func CentimetersToInches(cm float64) float64 { return Convert(cm, Centimeters, Inches) }

// YardsToMeters converts a length in yards to meters.
func YardsToMeters(yd float64) float64 { return Convert(yd, Yards, Meters) }

// MetersToYards converts a length in meters to yards.
func MetersToYards(m float64) float64 { return Convert(m, Meters, Yards) }

// PerCentimeterToPerInch converts a gauge rate (stitches or rows per
// centimeter) to the same rate per inch.
func PerCentimeterToPerInch(perCm float64) float64 {
	return decimal.NewFromFloat(perCm).Mul(centimetersPerInch).InexactFloat64()
}

// PerInchToPerCentimeter converts a gauge rate per inch to a rate per centimeter.
func PerInchToPerCentimeter(perIn float64) float64 {
	return decimal.NewFromFloat(perIn).Div(centimetersPerInch).InexactFloat64()
}

// GramsToOunces converts a mass in grams to ounces.
func GramsToOunces(g float64) float64 { return Convert(g, Grams, Ounces) }

// OuncesToGrams converts a mass in ounces to grams.
func OuncesToGrams(oz float64) float64 { return Convert(oz, Ounces, Grams) }

// Round rounds f half away from zero to the given number of decimal places.
func Round(f float64, places int32) float64 {
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}

// FormatFixed renders f with exactly places decimals.
func FormatFixed(f float64, places int32) string {
	return decimal.NewFromFloat(f).StringFixed(places)
}
