package gamification

import "math"

// xpThresholds holds the total XP required to reach each level, levels 1..20.
// Level 1 starts at 0, level 2 at 100, and so on.
var xpThresholds = []int{
	0,     // level 1
	100,   // level 2
	250,   // level 3
	500,   // level 4
	850,   // level 5
	1300,  // level 6
	1900,  // level 7
	2650,  // level 8
	3550,  // level 9
	4600,  // level 10
	5800,  // level 11
	7200,  // level 12
	8800,  // level 13
	10600, // level 14
	12600, // level 15
	14800, // level 16
	17200, // level 17
	19800, // level 18
	22600, // level 19
	25600, // level 20
}

// ThresholdForLevel returns the total XP required to reach the given level.
// Beyond the table, each level requires ~15% more than the previous one.
func ThresholdForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	if level <= len(xpThresholds) {
		return xpThresholds[level-1]
	}
	return int(math.Floor(float64(xpThresholds[len(xpThresholds)-1]) * math.Pow(1.15, float64(level-len(xpThresholds)))))
}

// LevelForXP returns the highest level whose threshold is at or below the
// given total XP. Negative XP is treated as zero, so the result is always ≥ 1.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		return 1
	}

	for i := len(xpThresholds) - 1; i >= 0; i-- {
		if totalXP >= xpThresholds[i] {
			level := i + 1
			if level < len(xpThresholds) {
				return level
			}
			// Past the table: walk the generated curve.
			for ThresholdForLevel(level+1) <= totalXP {
				level++
			}
			return level
		}
	}
	return 1
}

// LevelProgress describes where a total XP value sits within its level.
type LevelProgress struct {
	Level         int `json:"level"`
	XPIntoLevel   int `json:"xp_into_level"`
	XPToNextLevel int `json:"xp_to_next_level"`
	PercentToNext int `json:"percent_to_next"`
}

// Progress computes the level and intra-level progress for a total XP value.
// PercentToNext is floored and clamped to [0, 100]; a zero-width level reports
// 100 (the curve is unbounded, so this is robustness only).
func Progress(totalXP int) LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}

	level := LevelForXP(totalXP)
	current := ThresholdForLevel(level)
	next := ThresholdForLevel(level + 1)

	p := LevelProgress{
		Level:         level,
		XPIntoLevel:   totalXP - current,
		XPToNextLevel: next - current,
	}
	if p.XPToNextLevel > 0 {
		p.PercentToNext = min(100, p.XPIntoLevel*100/p.XPToNextLevel)
	} else {
		p.PercentToNext = 100
	}
	return p
}
