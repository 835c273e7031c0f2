package engine

import "testing"

func TestRoundForPurchase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category Category
		unit     string
		buffered float64
		want     float64
	}{
		{name: "GlasswareBelowFloor", category: CategoryGlassware, unit: "pc", buffered: 16.5, want: 24},
		{name: "GlasswareAboveFloorRoundsToDozen", category: CategoryGlassware, unit: "pc", buffered: 25, want: 36},
		{name: "GlasswareExactDozenKept", category: CategoryGlassware, unit: "pc", buffered: 36, want: 36},
		{name: "PieceUnitWholeNumber", category: CategoryGarnish, unit: "pcs", buffered: 4.2, want: 5},
		{name: "GarnishGramsFifteenStep", category: CategoryGarnish, unit: "g", buffered: 110, want: 120},
		{name: "GarnishGramsExactStepKept", category: CategoryGarnish, unit: "grams", buffered: 45, want: 45},
		{name: "DefaultWholeNumber", category: CategoryMixer, unit: "ml", buffered: 107.3, want: 108},
		{name: "ZeroStaysZero", category: CategoryJuice, unit: "ml", buffered: 0, want: 0},
		{name: "GramUnitOutsideGarnishUsesDefault", category: CategoryIce, unit: "g", buffered: 101.5, want: 102},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := roundForPurchase(tc.category, tc.unit, tc.buffered); got != tc.want {
				t.Fatalf("roundForPurchase(%s, %s, %v) = %v, want %v",
					tc.category, tc.unit, tc.buffered, got, tc.want)
			}
		})
	}
}

func TestCeilWholeAbsorbsFloatArtifacts(t *testing.T) {
	t.Parallel()

	// 400 * 1.1 == 440.00000000000006 in IEEE 754
	if got := ceilWhole(400 * bufferFactor); got != 440 {
		t.Fatalf("expected 440, got %v", got)
	}
	if got := ceilWhole(440.1); got != 441 {
		t.Fatalf("expected a real fraction to still round up, got %v", got)
	}
}

func TestGlasswareAlwaysDozenMultipleAtLeastTwoDozen(t *testing.T) {
	t.Parallel()

	for buffered := 0.0; buffered <= 200; buffered += 7.3 {
		got := roundForPurchase(CategoryGlassware, "pc", buffered)
		if got < 24 {
			t.Fatalf("buffered %v: glassware result %v below floor", buffered, got)
		}
		if int(got)%12 != 0 {
			t.Fatalf("buffered %v: glassware result %v not a dozen multiple", buffered, got)
		}
		if got < buffered {
			t.Fatalf("buffered %v: glassware result %v rounded down", buffered, got)
		}
	}
}
