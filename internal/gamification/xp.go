package gamification

import "math"

// progressionBonusMultiplier is the flat bonus for progressive overload:
// more weight than last time, or same weight for more reps.
const progressionBonusMultiplier = 0.2

// bodyweightBaseFactor scales rep-only volume for bodyweight exercises,
// which have no weight to multiply by.
const bodyweightBaseFactor = 10

// Set is the per-set input to the XP calculation.
type Set struct {
	Weight               float64
	Reps                 int
	IsBodyweight         bool
	DifficultyMultiplier float64
}

// BaseXP computes the volume-based XP for a single set.
// Weighted: floor(weight * reps). Bodyweight or zero-weight:
// floor(reps * difficulty * 10).
func BaseXP(set Set) int {
	if set.IsBodyweight || set.Weight == 0 {
		return int(math.Floor(float64(set.Reps) * set.DifficultyMultiplier * bodyweightBaseFactor))
	}
	return int(math.Floor(set.Weight * float64(set.Reps)))
}

// Previous is the most recent prior performance of an exercise. A nil
// Previous means the exercise has never been logged before.
type Previous struct {
	Weight float64
	Reps   int
}

// ProgressionBonus returns floor(baseXP * 0.2) when the lifter progressed
// since last time: strictly more weight, or the same weight for strictly more
// reps. First-ever performances earn no bonus. Any single-axis improvement
// earns the same flat rate.
func ProgressionBonus(baseXP int, currentWeight float64, currentReps int, prev *Previous) int {
	if prev == nil {
		return 0
	}

	progressed := currentWeight > prev.Weight ||
		(currentWeight == prev.Weight && currentReps > prev.Reps)
	if !progressed {
		return 0
	}
	return int(math.Floor(float64(baseXP) * progressionBonusMultiplier))
}

// SetXPResult breaks one set's XP into its components.
type SetXPResult struct {
	BaseXP           int `json:"base_xp"`
	ProgressionBonus int `json:"progression_bonus"`
	TotalXP          int `json:"total_xp"`
}

// SetXP computes a set's base XP and progression bonus against the previous
// performance of the same exercise.
func SetXP(set Set, prev *Previous) SetXPResult {
	base := BaseXP(set)
	bonus := ProgressionBonus(base, set.Weight, set.Reps, prev)
	return SetXPResult{
		BaseXP:           base,
		ProgressionBonus: bonus,
		TotalXP:          base + bonus,
	}
}
