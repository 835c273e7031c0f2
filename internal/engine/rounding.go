package engine

import "math"

// bufferFactor is the flat safety margin applied to every raw total.
const bufferFactor = 1.10

// roundingEpsilon absorbs IEEE 754 artifacts introduced by the buffer
// multiplication: 400 × 1.1 is 440.00000000000006, which must still round
// to 440, not 441.
const roundingEpsilon = 1e-9

// defaultBottleSizeML is assumed for liquor when no pack size was recorded.
const defaultBottleSizeML = 700

const (
	glasswareStep   = 12
	glasswareFloor  = 24
	garnishGramStep = 15
)

func ceilWhole(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Ceil(v - roundingEpsilon)
}

func ceilToMultiple(v, step float64) float64 {
	if step <= 0 {
		return ceilWhole(v)
	}
	if v <= 0 {
		return 0
	}
	return math.Ceil(v/step-roundingEpsilon) * step
}

func isPieceUnit(unit string) bool {
	switch unit {
	case "pc", "pcs", "piece", "pieces":
		return true
	}
	return false
}

func isGramUnit(unit string) bool {
	switch unit {
	case "g", "gram", "grams":
		return true
	}
	return false
}

// roundForPurchase converts a buffered quantity into a purchasable one.
// Glassware is bought in dozens with a two-dozen floor; garnishes sold by
// weight come in 15 g steps; everything else rounds up to whole units.
// Liquor never reaches this table, it has its own whole-ml branch.
func roundForPurchase(category Category, unit string, buffered float64) float64 {
	switch {
	case category == CategoryGlassware:
		return math.Max(glasswareFloor, ceilToMultiple(buffered, glasswareStep))
	case isPieceUnit(unit):
		return ceilWhole(buffered)
	case category == CategoryGarnish && isGramUnit(unit):
		return ceilToMultiple(buffered, garnishGramStep)
	default:
		return ceilWhole(buffered)
	}
}
