package training

import (
	"errors"
	"log/slog"
)

// ErrNotFound is returned when a referenced session, plan day, or exercise
// does not exist. Storage maps its no-rows condition to this.
var ErrNotFound = errors.New("not found")

// ErrSessionEnded is returned when ending a session that already has an end
// time. The first end wins; repeats never reprocess XP.
var ErrSessionEnded = errors.New("session already ended")

// ErrValidation is the base error for rejected input. Wrap with context:
// fmt.Errorf("%w: reps must be positive", ErrValidation).
var ErrValidation = errors.New("invalid input")

// Engine implements the training progression core: status resolution, session
// lifecycle, XP processing, and consistency metrics. All date-window logic
// takes an explicit reference time so behavior is deterministic under test.
type Engine struct {
	store Store
	log   *slog.Logger
}

// New creates an Engine on top of a Store.
func New(store Store, log *slog.Logger) *Engine {
	return &Engine{store: store, log: log}
}
