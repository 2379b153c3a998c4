package training

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// defaultDaysPerWeek is assumed when a plan has no configured days.
const defaultDaysPerWeek = 3

// recentSessionWindow is how many completed sessions the per-session
// completion rate averages over.
const recentSessionWindow = 10

// ConsistencyMetrics holds the three adherence percentages. The rates are
// independent views and may disagree: perfect set completion with low weekly
// frequency is a legitimate combination.
type ConsistencyMetrics struct {
	Session       int  `json:"session"`
	Weekly        int  `json:"weekly"`
	Monthly       int  `json:"monthly"`
	HasEnoughData bool `json:"has_enough_data"`
}

// Consistency computes adherence percentages for the user at the given
// reference time. A user with no active plan or no start date gets all zeros.
func (e *Engine) Consistency(ctx context.Context, userID uuid.UUID, now time.Time) (*ConsistencyMetrics, error) {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if user.CurrentPlanID == nil || user.PlanStartDate == nil {
		return &ConsistencyMetrics{}, nil
	}

	daysPerWeek, err := e.store.CountDistinctPlanDays(ctx, *user.CurrentPlanID)
	if err != nil {
		return nil, fmt.Errorf("counting plan days: %w", err)
	}
	if daysPerWeek == 0 {
		daysPerWeek = defaultDaysPerWeek
	}

	weekStart, weekEnd := weekBounds(now)
	weekCount, err := e.store.CountCompletedSessions(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("counting sessions this week: %w", err)
	}

	monthStart, monthEnd := monthBounds(now)
	monthCount, err := e.store.CountCompletedSessions(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("counting sessions this month: %w", err)
	}

	sessionRate, err := e.sessionCompletionRate(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := e.store.CountCompletedSessionsTotal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting total sessions: %w", err)
	}

	// Monthly denominator is a flat four weeks regardless of calendar month
	// length, matching the product definition; do not calendar-correct it.
	expectedMonth := daysPerWeek * 4

	return &ConsistencyMetrics{
		Session:       sessionRate,
		Weekly:        clampRate(weekCount, daysPerWeek),
		Monthly:       clampRate(monthCount, expectedMonth),
		HasEnoughData: total >= 1,
	}, nil
}

// clampRate returns round(actual/expected * 100) capped at 100.
func clampRate(actual, expected int) int {
	if expected <= 0 {
		return 0
	}
	rate := int(math.Round(float64(actual) / float64(expected) * 100))
	return min(100, rate)
}

// sessionCompletionRate averages, over the last completed sessions, the
// percentage of each session's target sets that were actually logged. Each
// exercise contributes at most its target (extra sets don't overfill), and
// sessions whose plan day has no targets are skipped.
func (e *Engine) sessionCompletionRate(ctx context.Context, userID uuid.UUID) (int, error) {
	recent, err := e.store.RecentCompletedSessions(ctx, userID, recentSessionWindow)
	if err != nil {
		return 0, fmt.Errorf("listing recent sessions: %w", err)
	}
	if len(recent) == 0 {
		return 0, nil
	}

	var rates []float64
	for _, session := range recent {
		targets, err := e.store.GetPlanDayExercises(ctx, session.PlanDayID)
		if err != nil {
			return 0, fmt.Errorf("loading plan day targets: %w", err)
		}

		counts, err := e.store.NonWarmupSetCounts(ctx, session.ID)
		if err != nil {
			return 0, fmt.Errorf("counting session sets: %w", err)
		}
		actualByExercise := make(map[uuid.UUID]int, len(counts))
		for _, c := range counts {
			actualByExercise[c.ExerciseID] = c.Sets
		}

		totalTarget, totalActual := 0, 0
		for _, target := range targets {
			totalTarget += target.TargetSets
			totalActual += min(actualByExercise[target.ExerciseID], target.TargetSets)
		}
		if totalTarget > 0 {
			rates = append(rates, float64(totalActual)/float64(totalTarget)*100)
		}
	}
	if len(rates) == 0 {
		return 0, nil
	}

	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	return int(math.Round(sum / float64(len(rates)))), nil
}
