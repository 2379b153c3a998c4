package training

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/lifttrack/internal/models"
	"github.com/google/uuid"
)

// Session retrieves one session by ID.
func (e *Engine) Session(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return session, nil
}

// StartSession creates a session beginning at the given time with no end time.
// Plan-day ownership checks belong to the caller; the concurrent-session guard
// is the status resolver, which callers consult before offering a start.
func (e *Engine) StartSession(ctx context.Context, userID, planDayID uuid.UUID, startedAt time.Time, weekNumber, dayInWeek int) (*models.Session, error) {
	session, err := e.store.CreateSession(ctx, userID, planDayID, startedAt, weekNumber, dayInWeek)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	e.log.Info("session started", "session_id", session.ID, "user_id", userID, "plan_day_id", planDayID)
	return session, nil
}

// LogSetParams is the input to LogSet. SetNumber is caller-supplied and not
// checked for contiguity.
type LogSetParams struct {
	SessionID  uuid.UUID `json:"session_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	SetNumber  int       `json:"set_number"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	IsWarmup   bool      `json:"is_warmup"`
}

// LogSet validates and appends one set to a session.
func (e *Engine) LogSet(ctx context.Context, p LogSetParams) (*models.SessionSet, error) {
	if p.Reps <= 0 {
		return nil, fmt.Errorf("%w: reps must be positive", ErrValidation)
	}
	if p.Weight < 0 {
		return nil, fmt.Errorf("%w: weight must not be negative", ErrValidation)
	}

	set := &models.SessionSet{
		SessionID:  p.SessionID,
		ExerciseID: p.ExerciseID,
		SetNumber:  p.SetNumber,
		Weight:     p.Weight,
		Reps:       p.Reps,
		IsWarmup:   p.IsWarmup,
	}
	if err := e.store.InsertSet(ctx, set); err != nil {
		return nil, fmt.Errorf("inserting set: %w", err)
	}
	return set, nil
}

// EndSession marks the session as ended and processes XP exactly once.
// The end time only transitions null → non-null; a second call returns
// ErrSessionEnded without touching XP. An XP processing failure after the end
// time is persisted does not undo the end — it is logged and the ended
// session is returned.
func (e *Engine) EndSession(ctx context.Context, sessionID uuid.UUID, endedAt time.Time, notes *string) (*models.Session, error) {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	ended, err := e.store.EndSession(ctx, sessionID, endedAt, notes)
	if err != nil {
		return nil, fmt.Errorf("ending session: %w", err)
	}
	if !ended {
		return nil, ErrSessionEnded
	}
	session.EndedAt = &endedAt
	session.Notes = notes

	if err := e.processSessionXP(ctx, session.UserID, sessionID); err != nil {
		e.log.Error("xp processing failed", "session_id", sessionID, "user_id", session.UserID, "error", err)
	}

	e.log.Info("session ended", "session_id", sessionID, "user_id", session.UserID)
	return session, nil
}

// ToggleExerciseComplete marks or unmarks an exercise as done without detailed
// logging, via the placeholder-set convention. Both directions check current
// state first, so rapid double toggles never create duplicates and unmarking
// an unmarked exercise is a no-op.
func (e *Engine) ToggleExerciseComplete(ctx context.Context, sessionID, exerciseID uuid.UUID, completed bool) error {
	exists, err := e.store.HasCompletionPlaceholder(ctx, sessionID, exerciseID)
	if err != nil {
		return fmt.Errorf("checking completion placeholder: %w", err)
	}

	switch {
	case completed && !exists:
		if err := e.store.InsertCompletionPlaceholder(ctx, sessionID, exerciseID); err != nil {
			return fmt.Errorf("inserting completion placeholder: %w", err)
		}
	case !completed && exists:
		if err := e.store.DeleteCompletionPlaceholder(ctx, sessionID, exerciseID); err != nil {
			return fmt.Errorf("deleting completion placeholder: %w", err)
		}
	}
	return nil
}

// UpdateSessionTimes rewrites a session's start and end times. The end must be
// strictly after the start; nothing is written otherwise.
func (e *Engine) UpdateSessionTimes(ctx context.Context, sessionID uuid.UUID, startedAt, endedAt time.Time) error {
	if !endedAt.After(startedAt) {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	if err := e.store.UpdateSessionTimes(ctx, sessionID, startedAt, endedAt); err != nil {
		return fmt.Errorf("updating session times: %w", err)
	}
	return nil
}

// UpdateSessionNotes replaces a session's notes.
func (e *Engine) UpdateSessionNotes(ctx context.Context, sessionID uuid.UUID, notes *string) error {
	if err := e.store.UpdateSessionNotes(ctx, sessionID, notes); err != nil {
		return fmt.Errorf("updating session notes: %w", err)
	}
	return nil
}

// UpdateSet rewrites a logged set's weight and reps with the same validation
// as LogSet.
func (e *Engine) UpdateSet(ctx context.Context, setID uuid.UUID, weight float64, reps int) error {
	if reps <= 0 {
		return fmt.Errorf("%w: reps must be positive", ErrValidation)
	}
	if weight < 0 {
		return fmt.Errorf("%w: weight must not be negative", ErrValidation)
	}
	if err := e.store.UpdateSet(ctx, setID, weight, reps); err != nil {
		return fmt.Errorf("updating set: %w", err)
	}
	return nil
}

// DeleteSet removes a logged set.
func (e *Engine) DeleteSet(ctx context.Context, setID uuid.UUID) error {
	if err := e.store.DeleteSet(ctx, setID); err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	return nil
}

// DeleteSession removes a session; its sets cascade in the store.
func (e *Engine) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if err := e.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	e.log.Info("session deleted", "session_id", sessionID)
	return nil
}

// RecentSessions lists the user's most recent completed sessions, newest
// first.
func (e *Engine) RecentSessions(ctx context.Context, userID uuid.UUID, limit int) ([]models.Session, error) {
	sessions, err := e.store.RecentCompletedSessions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}
