package gamification

import "testing"

// TestLevelForXPTable verifies level lookups against the fixed threshold table.
// Each threshold is the minimum XP for its level, so XP exactly at a threshold
// must land on that level and XP one below must land on the previous one.
func TestLevelForXPTable(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{850, 5},
		{25599, 19},
		{25600, 20},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

// TestLevelForXPNegative verifies negative XP is treated as zero XP: level 1.
func TestLevelForXPNegative(t *testing.T) {
	if got := LevelForXP(-500); got != 1 {
		t.Errorf("LevelForXP(-500) = %d, want 1", got)
	}
}

// TestLevelForXPBeyondTable verifies the generated curve past level 20.
// Level 21 requires floor(25600 * 1.15) = 29440 total XP.
func TestLevelForXPBeyondTable(t *testing.T) {
	if got := LevelForXP(29439); got != 20 {
		t.Errorf("LevelForXP(29439) = %d, want 20", got)
	}
	if got := LevelForXP(29440); got != 21 {
		t.Errorf("LevelForXP(29440) = %d, want 21", got)
	}
}

// TestThresholdForLevelGenerated verifies the extended curve grows ~15% per
// level and stays strictly increasing well past the table.
func TestThresholdForLevelGenerated(t *testing.T) {
	if got := ThresholdForLevel(21); got != 29440 {
		t.Errorf("ThresholdForLevel(21) = %d, want 29440", got)
	}
	prev := ThresholdForLevel(20)
	for level := 21; level <= 40; level++ {
		cur := ThresholdForLevel(level)
		if cur <= prev {
			t.Fatalf("ThresholdForLevel(%d) = %d, not greater than %d", level, cur, prev)
		}
		prev = cur
	}
}

// TestThresholdForLevelNonPositive verifies non-positive levels map to 0 XP.
func TestThresholdForLevelNonPositive(t *testing.T) {
	if got := ThresholdForLevel(0); got != 0 {
		t.Errorf("ThresholdForLevel(0) = %d, want 0", got)
	}
	if got := ThresholdForLevel(-3); got != 0 {
		t.Errorf("ThresholdForLevel(-3) = %d, want 0", got)
	}
}

// TestLevelForXPMonotonic verifies the level never decreases as XP grows and
// that every XP value sits inside its level's threshold window.
func TestLevelForXPMonotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 60000; xp += 137 {
		level := LevelForXP(xp)
		if level < 1 {
			t.Fatalf("LevelForXP(%d) = %d, want >= 1", xp, level)
		}
		if level < prev {
			t.Fatalf("LevelForXP(%d) = %d, decreased from %d", xp, level, prev)
		}
		if ThresholdForLevel(level) > xp {
			t.Fatalf("ThresholdForLevel(%d) = %d exceeds xp %d", level, ThresholdForLevel(level), xp)
		}
		if ThresholdForLevel(level+1) <= xp {
			t.Fatalf("xp %d should already be level %d", xp, level+1)
		}
		prev = level
	}
}

// TestProgress verifies the intra-level progress breakdown. 150 XP is level 2
// (threshold 100), 50 XP into a 150-wide level: 33%.
func TestProgress(t *testing.T) {
	p := Progress(150)
	if p.Level != 2 {
		t.Errorf("level = %d, want 2", p.Level)
	}
	if p.XPIntoLevel != 50 {
		t.Errorf("xp into level = %d, want 50", p.XPIntoLevel)
	}
	if p.XPToNextLevel != 150 {
		t.Errorf("xp to next level = %d, want 150", p.XPToNextLevel)
	}
	if p.PercentToNext != 33 {
		t.Errorf("percent = %d, want 33", p.PercentToNext)
	}
}

// TestProgressAtThreshold verifies a fresh level reports 0 percent progress.
func TestProgressAtThreshold(t *testing.T) {
	p := Progress(100)
	if p.Level != 2 || p.XPIntoLevel != 0 || p.PercentToNext != 0 {
		t.Errorf("Progress(100) = %+v, want level 2 at 0%%", p)
	}
}

// TestProgressNegative verifies negative XP is clamped to the bottom of level 1.
func TestProgressNegative(t *testing.T) {
	p := Progress(-10)
	if p.Level != 1 || p.XPIntoLevel != 0 {
		t.Errorf("Progress(-10) = %+v, want level 1 at 0 xp", p)
	}
}
