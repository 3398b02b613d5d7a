package planner

import "testing"

func TestEveryCutFullyConfigured(t *testing.T) {
	for cut := range cookTimes {
		if _, ok := restRanges[cut]; !ok {
			t.Errorf("cut %q has no rest range", cut)
		}
		if _, ok := defaultTargetTemps[cut]; !ok {
			t.Errorf("cut %q has no default target temperature", cut)
		}
	}
	for cut := range stallProneCuts {
		if _, ok := cookTimes[cut]; !ok {
			t.Errorf("stall-prone cut %q is not a configured cut", cut)
		}
	}
}

func TestEnumValidators(t *testing.T) {
	if !IsCutValid("brisket") || IsCutValid("wagyu_a5") {
		t.Error("IsCutValid misclassified a cut")
	}
	if !IsSmokerValid("pellet") || IsSmokerValid("microwave") {
		t.Error("IsSmokerValid misclassified a smoker type")
	}
	if !IsWrapValid("none") || !IsWrapValid("foil") || IsWrapValid("plastic") {
		t.Error("IsWrapValid misclassified a wrap method")
	}
}

func TestLevelForScore(t *testing.T) {
	cases := []struct {
		score int
		want  ConfidenceLevel
	}{
		{100, ConfidenceHigh},
		{70, ConfidenceHigh},
		{69, ConfidenceMedium},
		{40, ConfidenceMedium},
		{39, ConfidenceLow},
		{20, ConfidenceLow},
	}
	for _, tc := range cases {
		if got := LevelForScore(tc.score); got != tc.want {
			t.Errorf("LevelForScore(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestStallBand(t *testing.T) {
	low, high := StallBand()
	if low >= high {
		t.Errorf("stall band inverted: %v >= %v", low, high)
	}
	if low != 150 || high != 170 {
		t.Errorf("stall band = [%v, %v], want [150, 170]", low, high)
	}
}
