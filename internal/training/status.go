package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/lifttrack/internal/models"
	"github.com/google/uuid"
)

// StatusType identifies the training state a user is in.
type StatusType string

const (
	StatusNoPlan            StatusType = "no_plan"
	StatusSessionInProgress StatusType = "session_in_progress"
	StatusTrainedToday      StatusType = "trained_today"
	StatusRecoveryDay       StatusType = "recovery_day"
	StatusWeekComplete      StatusType = "week_complete"
	StatusReadyToTrain      StatusType = "ready_to_train"
)

// Status is the resolved training state. Exactly one payload field matching
// Type is populated.
type Status struct {
	Type             StatusType        `json:"type"`
	InProgress       *InProgressInfo   `json:"in_progress,omitempty"`
	TrainedToday     *TrainedTodayInfo `json:"trained_today,omitempty"`
	SessionsThisWeek int               `json:"sessions_this_week,omitempty"`
	TrainingDay      *TrainingDay      `json:"training_day,omitempty"`
}

// InProgressInfo describes the currently running session.
type InProgressInfo struct {
	SessionID   uuid.UUID `json:"session_id"`
	PlanDayName string    `json:"plan_day_name"`
	StartedAt   time.Time `json:"started_at"`
	SetsLogged  int       `json:"sets_logged"`
}

// TrainedTodayInfo summarizes today's completed session.
type TrainedTodayInfo struct {
	SessionID uuid.UUID                 `json:"session_id"`
	Exercises []models.ExerciseSetCount `json:"exercises"`
	TotalSets int                       `json:"total_sets"`
}

// TrainingDay is the next plan day to perform.
type TrainingDay struct {
	WeekNumber int                            `json:"week_number"`
	DayNumber  int                            `json:"day_number"`
	DayName    string                         `json:"day_name"`
	PlanDayID  uuid.UUID                      `json:"plan_day_id"`
	Exercises  []models.PlanDayExerciseDetail `json:"exercises"`
}

// statusInput carries the per-request facts the resolver steps share.
type statusInput struct {
	user             *models.User
	now              time.Time
	sessionsThisWeek int
	weekCounted      bool
}

// Status resolves the user's training state at the given reference time.
// The states are checked in strict priority order and the first match wins;
// that ordering is a contract (trained-today must shadow recovery-day, and an
// in-progress session must shadow both).
func (e *Engine) Status(ctx context.Context, userID uuid.UUID, now time.Time) (*Status, error) {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if user.CurrentPlanID == nil || user.PlanStartDate == nil {
		return &Status{Type: StatusNoPlan}, nil
	}

	in := &statusInput{user: user, now: now}
	steps := []func(context.Context, *statusInput) (*Status, error){
		e.resolveSessionInProgress,
		e.resolveTrainedToday,
		e.resolveRecoveryDay,
		e.resolveWeekComplete,
		e.resolveReadyToTrain,
	}
	for _, step := range steps {
		status, err := step(ctx, in)
		if err != nil {
			return nil, err
		}
		if status != nil {
			return status, nil
		}
	}
	// resolveReadyToTrain always returns a status.
	return &Status{Type: StatusNoPlan}, nil
}

func (e *Engine) resolveSessionInProgress(ctx context.Context, in *statusInput) (*Status, error) {
	dayStart, dayEnd := dayBounds(in.now)
	session, err := e.store.InProgressSession(ctx, in.user.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("looking up in-progress session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	planDay, err := e.store.GetPlanDay(ctx, session.PlanDayID)
	if err != nil {
		return nil, fmt.Errorf("loading plan day: %w", err)
	}
	setCount, err := e.store.CountSets(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	return &Status{
		Type: StatusSessionInProgress,
		InProgress: &InProgressInfo{
			SessionID:   session.ID,
			PlanDayName: planDay.Name,
			StartedAt:   session.StartedAt,
			SetsLogged:  setCount,
		},
	}, nil
}

func (e *Engine) resolveTrainedToday(ctx context.Context, in *statusInput) (*Status, error) {
	dayStart, dayEnd := dayBounds(in.now)
	session, err := e.store.LatestCompletedSession(ctx, in.user.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("looking up today's session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	exercises, err := e.store.NonWarmupSetCounts(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("summarizing session sets: %w", err)
	}
	total := 0
	for _, ex := range exercises {
		total += ex.Sets
	}

	return &Status{
		Type: StatusTrainedToday,
		TrainedToday: &TrainedTodayInfo{
			SessionID: session.ID,
			Exercises: exercises,
			TotalSets: total,
		},
	}, nil
}

func (e *Engine) resolveRecoveryDay(ctx context.Context, in *statusInput) (*Status, error) {
	// Calendar yesterday, not a rolling 24-hour window.
	dayStart, _ := dayBounds(in.now)
	session, err := e.store.LatestCompletedSession(ctx, in.user.ID, dayStart.AddDate(0, 0, -1), dayStart)
	if err != nil {
		return nil, fmt.Errorf("looking up yesterday's session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	return &Status{Type: StatusRecoveryDay}, nil
}

func (e *Engine) resolveWeekComplete(ctx context.Context, in *statusInput) (*Status, error) {
	weekStart, weekEnd := weekBounds(in.now)
	count, err := e.store.CountCompletedSessions(ctx, in.user.ID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("counting sessions this week: %w", err)
	}
	in.sessionsThisWeek = count
	in.weekCounted = true

	daysPerWeek, err := e.store.CountDistinctPlanDays(ctx, *in.user.CurrentPlanID)
	if err != nil {
		return nil, fmt.Errorf("counting plan days: %w", err)
	}
	if daysPerWeek > 0 && count >= daysPerWeek {
		return &Status{Type: StatusWeekComplete, SessionsThisWeek: count}, nil
	}
	return nil, nil
}

func (e *Engine) resolveReadyToTrain(ctx context.Context, in *statusInput) (*Status, error) {
	if !in.weekCounted {
		weekStart, weekEnd := weekBounds(in.now)
		count, err := e.store.CountCompletedSessions(ctx, in.user.ID, weekStart, weekEnd)
		if err != nil {
			return nil, fmt.Errorf("counting sessions this week: %w", err)
		}
		in.sessionsThisWeek = count
	}

	// Program week is a label only; content selection uses day-in-week.
	daysSinceStart := daysBetween(*in.user.PlanStartDate, in.now)
	if daysSinceStart < 0 {
		daysSinceStart = 0
	}
	programWeek := daysSinceStart/7 + 1
	nextDay := in.sessionsThisWeek + 1

	planDay, err := e.store.GetPlanDayByNumber(ctx, *in.user.CurrentPlanID, nextDay)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Misconfigured plan: no such day. Treat as having no usable plan.
			return &Status{Type: StatusNoPlan}, nil
		}
		return nil, fmt.Errorf("loading plan day %d: %w", nextDay, err)
	}

	exercises, err := e.store.GetPlanDayExercises(ctx, planDay.ID)
	if err != nil {
		return nil, fmt.Errorf("loading plan day exercises: %w", err)
	}

	return &Status{
		Type:             StatusReadyToTrain,
		SessionsThisWeek: in.sessionsThisWeek,
		TrainingDay: &TrainingDay{
			WeekNumber: programWeek,
			DayNumber:  nextDay,
			DayName:    planDay.Name,
			PlanDayID:  planDay.ID,
			Exercises:  exercises,
		},
	}, nil
}
