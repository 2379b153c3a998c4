package training

import (
	"context"
	"fmt"

	"github.com/claude/lifttrack/internal/gamification"
	"github.com/google/uuid"
)

// processSessionXP converts a completed session's sets into XP grants, one
// per muscle group, and applies them atomically. A session with no qualifying
// sets (only warmups or placeholders) earns nothing and writes nothing.
//
// Only EndSession calls this, and only on the null → non-null end transition,
// so a session's XP is never counted twice.
func (e *Engine) processSessionXP(ctx context.Context, userID, sessionID uuid.UUID) error {
	sets, err := e.store.SessionSetsForXP(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session sets: %w", err)
	}
	if len(sets) == 0 {
		return nil
	}

	type muscleTotals struct {
		baseXP  int
		bonusXP int
		seen    map[uuid.UUID]bool
	}
	totals := make(map[string]*muscleTotals)
	var order []string

	for _, set := range sets {
		mt := totals[set.MuscleGroup]
		if mt == nil {
			mt = &muscleTotals{seen: make(map[uuid.UUID]bool)}
			totals[set.MuscleGroup] = mt
			order = append(order, set.MuscleGroup)
		}

		base := gamification.BaseXP(gamification.Set{
			Weight:               set.Weight,
			Reps:                 set.Reps,
			IsBodyweight:         set.IsBodyweight,
			DifficultyMultiplier: set.DifficultyMultiplier,
		})
		mt.baseXP += base

		// The progression bonus is evaluated once per exercise per session,
		// against the first set seen; later sets add base XP only.
		if mt.seen[set.ExerciseID] {
			continue
		}
		mt.seen[set.ExerciseID] = true

		prevRef, err := e.store.PreviousSet(ctx, userID, set.ExerciseID, sessionID)
		if err != nil {
			return fmt.Errorf("loading previous set: %w", err)
		}
		var prev *gamification.Previous
		if prevRef != nil {
			prev = &gamification.Previous{Weight: prevRef.Weight, Reps: prevRef.Reps}
		}
		mt.bonusXP += gamification.ProgressionBonus(base, set.Weight, set.Reps, prev)
	}

	var grants []XPGrant
	for _, muscleGroup := range order {
		mt := totals[muscleGroup]
		total := mt.baseXP + mt.bonusXP
		if total == 0 {
			continue
		}
		grants = append(grants, XPGrant{
			MuscleGroup:      muscleGroup,
			BaseXP:           mt.baseXP,
			ProgressionBonus: mt.bonusXP,
			TotalXP:          total,
		})
	}
	if len(grants) == 0 {
		return nil
	}

	if err := e.store.ApplyXPGrants(ctx, userID, sessionID, grants); err != nil {
		return fmt.Errorf("applying xp grants: %w", err)
	}

	for _, g := range grants {
		e.log.Info("xp granted",
			"user_id", userID,
			"session_id", sessionID,
			"muscle_group", g.MuscleGroup,
			"base_xp", g.BaseXP,
			"bonus", g.ProgressionBonus,
		)
	}
	return nil
}
