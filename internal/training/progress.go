package training

import (
	"context"
	"fmt"
	"math"

	"github.com/claude/lifttrack/internal/gamification"
	"github.com/google/uuid"
)

// MuscleProgress is one muscle group's cumulative XP decorated with its
// position on the leveling curve.
type MuscleProgress struct {
	MuscleGroup   string `json:"muscle_group"`
	TotalXP       int    `json:"total_xp"`
	CurrentLevel  int    `json:"current_level"`
	XPIntoLevel   int    `json:"xp_into_level"`
	XPToNextLevel int    `json:"xp_to_next_level"`
	PercentToNext int    `json:"percent_to_next"`
}

// MuscleProgress returns per-muscle-group levels in canonical muscle order.
func (e *Engine) MuscleProgress(ctx context.Context, userID uuid.UUID) ([]MuscleProgress, error) {
	rows, err := e.store.MuscleGroupXP(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading muscle group xp: %w", err)
	}

	result := make([]MuscleProgress, 0, len(rows))
	for _, row := range rows {
		p := gamification.Progress(row.TotalXP)
		result = append(result, MuscleProgress{
			MuscleGroup:   row.MuscleGroup,
			TotalXP:       row.TotalXP,
			CurrentLevel:  p.Level,
			XPIntoLevel:   p.XPIntoLevel,
			XPToNextLevel: p.XPToNextLevel,
			PercentToNext: p.PercentToNext,
		})
	}
	gamification.SortMuscleGroups(result, func(m MuscleProgress) string { return m.MuscleGroup })
	return result, nil
}

// CharacterLevel is the rounded average of all muscle group levels, or 1 for
// a user with no XP yet.
func (e *Engine) CharacterLevel(ctx context.Context, userID uuid.UUID) (int, error) {
	progress, err := e.MuscleProgress(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(progress) == 0 {
		return 1, nil
	}

	sum := 0
	for _, m := range progress {
		sum += m.CurrentLevel
	}
	return int(math.Round(float64(sum) / float64(len(progress)))), nil
}

// ProgressHistory returns per-session XP totals in chronological order, for
// charting. Limit bounds how many recent sessions are included.
func (e *Engine) ProgressHistory(ctx context.Context, userID uuid.UUID, limit int) ([]SessionXPSummary, error) {
	points, err := e.store.SessionXPSummaries(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading xp summaries: %w", err)
	}
	// Store returns newest first; charts want oldest first.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}
