package gamification

import "testing"

// TestBaseXPWeighted verifies weighted sets earn floor(weight * reps).
func TestBaseXPWeighted(t *testing.T) {
	got := BaseXP(Set{Weight: 100, Reps: 10, DifficultyMultiplier: 1})
	if got != 1000 {
		t.Errorf("BaseXP = %d, want 1000", got)
	}

	// Fractional plates floor down.
	got = BaseXP(Set{Weight: 62.5, Reps: 5, DifficultyMultiplier: 1})
	if got != 312 {
		t.Errorf("BaseXP = %d, want 312", got)
	}
}

// TestBaseXPBodyweight verifies bodyweight sets earn
// floor(reps * difficulty * 10), including when a weight happens to be logged.
func TestBaseXPBodyweight(t *testing.T) {
	got := BaseXP(Set{Weight: 20, Reps: 8, IsBodyweight: true, DifficultyMultiplier: 1.5})
	if got != 120 {
		t.Errorf("BaseXP = %d, want 120", got)
	}
}

// TestBaseXPZeroWeight verifies a zero-weight set on a weighted exercise falls
// back to the bodyweight formula instead of earning nothing.
func TestBaseXPZeroWeight(t *testing.T) {
	got := BaseXP(Set{Weight: 0, Reps: 12, DifficultyMultiplier: 1})
	if got != 120 {
		t.Errorf("BaseXP = %d, want 120", got)
	}
}

// TestProgressionBonusNoHistory verifies the first-ever performance of an
// exercise earns no bonus.
func TestProgressionBonusNoHistory(t *testing.T) {
	if got := ProgressionBonus(1000, 100, 10, nil); got != 0 {
		t.Errorf("bonus = %d, want 0", got)
	}
}

// TestProgressionBonusCases verifies the overload rule: strictly more weight,
// or same weight with strictly more reps, earns a flat 20% of base XP.
// Anything else earns nothing.
func TestProgressionBonusCases(t *testing.T) {
	cases := []struct {
		name       string
		weight     float64
		reps       int
		prevWeight float64
		prevReps   int
		want       int
	}{
		{"weight up", 100, 10, 90, 10, 200},
		{"weight up reps down", 100, 8, 90, 10, 200},
		{"same weight more reps", 100, 12, 100, 10, 200},
		{"same weight same reps", 100, 10, 100, 10, 0},
		{"same weight fewer reps", 100, 8, 100, 10, 0},
		{"weight down more reps", 90, 15, 100, 10, 0},
	}
	for _, c := range cases {
		prev := &Previous{Weight: c.prevWeight, Reps: c.prevReps}
		if got := ProgressionBonus(1000, c.weight, c.reps, prev); got != c.want {
			t.Errorf("%s: bonus = %d, want %d", c.name, got, c.want)
		}
	}
}

// TestProgressionBonusFloors verifies the 20% bonus floors on odd bases.
func TestProgressionBonusFloors(t *testing.T) {
	prev := &Previous{Weight: 50, Reps: 5}
	if got := ProgressionBonus(333, 55, 5, prev); got != 66 {
		t.Errorf("bonus = %d, want 66", got)
	}
}

// TestSetXP verifies the composed result sums base and bonus.
func TestSetXP(t *testing.T) {
	set := Set{Weight: 100, Reps: 10, DifficultyMultiplier: 1}
	res := SetXP(set, &Previous{Weight: 90, Reps: 10})
	if res.BaseXP != 1000 || res.ProgressionBonus != 200 || res.TotalXP != 1200 {
		t.Errorf("SetXP = %+v, want {1000 200 1200}", res)
	}

	res = SetXP(set, nil)
	if res.BaseXP != 1000 || res.ProgressionBonus != 0 || res.TotalXP != 1000 {
		t.Errorf("SetXP without history = %+v, want {1000 0 1000}", res)
	}
}

// TestSortMuscleGroups verifies canonical ordering with unknown groups
// trailing alphabetically.
func TestSortMuscleGroups(t *testing.T) {
	groups := []string{"Neck", "Core", "Chest", "Abductors", "Back"}
	SortMuscleGroups(groups, func(s string) string { return s })

	want := []string{"Chest", "Back", "Core", "Abductors", "Neck"}
	for i := range want {
		if groups[i] != want[i] {
			t.Fatalf("order = %v, want %v", groups, want)
		}
	}
}
