// Package numeric holds the leaf arithmetic shared by the calculators:
// greatest common divisor, least common multiple and the fixed-ratio unit
// conversions.
//
// GCD and LCM operate on int. LCM divides before it multiplies so that the
// intermediate value never exceeds the result; CheckedLCM additionally
// reports overflow, which the compatibility solver uses to refuse
// pathological repeat sets.
//
// Unit conversions run through shopspring/decimal so that a chain such as
// cm → in → cm returns the original value at display precision:
//
//	cm := numeric.Convert(10, numeric.Inches, numeric.Centimeters) // 25.4
package numeric
