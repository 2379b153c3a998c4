// Package seed loads plan template JSON files into storage. Plans are
// identified by name; a plan that already exists is never modified, so
// editing a live plan requires a new name.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/claude/lifttrack/internal/models"
)

// Store is the slice of storage the seeder writes through. *storage.DB
// satisfies it.
type Store interface {
	InsertPlanTemplate(ctx context.Context, plan *models.Plan) (bool, error)
	InsertPlanDay(ctx context.Context, day *models.PlanDay) error
	GetOrCreateExercise(ctx context.Context, e *models.Exercise) error
	InsertPlanDayExercise(ctx context.Context, pde *models.PlanDayExercise) error
	LinkProgression(ctx context.Context, exerciseID, nextID uuid.UUID) error
	GetExerciseByName(ctx context.Context, name string) (*models.Exercise, error)
}

// PlanExercise is one exercise entry in a plan file.
type PlanExercise struct {
	Name                 string   `json:"name"`
	MuscleGroup          string   `json:"muscleGroup"`
	IsCompound           bool     `json:"isCompound"`
	IsBodyweight         bool     `json:"isBodyweight"`
	NextProgression      string   `json:"nextProgression"`
	DifficultyMultiplier float64  `json:"difficultyMultiplier"`
	TargetSets           int      `json:"targetSets"`
	TargetReps           string   `json:"targetReps"`
	DefaultReps          int      `json:"defaultReps"`
	RPETarget            *float64 `json:"rpeTarget"`
}

// PlanDay is one training day in a plan file.
type PlanDay struct {
	DayNumber int            `json:"dayNumber"`
	Name      string         `json:"name"`
	Exercises []PlanExercise `json:"exercises"`
}

// Plan is the on-disk plan template format.
type Plan struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	TotalWeeks  *int      `json:"totalWeeks"`
	DaysPerWeek int       `json:"daysPerWeek"`
	Days        []PlanDay `json:"days"`
}

// Stats summarizes one seeding run.
type Stats struct {
	PlansApplied  int
	PlansSkipped  int
	DaysInserted  int
	ExercisesSeen int
	LinksCreated  int
}

// Seeder applies plan files to storage, tracking applied files in a local
// state database.
type Seeder struct {
	store Store
	state *StateDB
	log   *slog.Logger
}

// New creates a Seeder. The state database may be nil, in which case every
// file is applied unconditionally.
func New(store Store, state *StateDB, log *slog.Logger) *Seeder {
	return &Seeder{store: store, state: state, log: log}
}

// SeedDir applies every .json plan file in dir. With dryRun set, files are
// parsed and validated but nothing is written, and the state database is left
// untouched.
func (s *Seeder) SeedDir(ctx context.Context, dir string, dryRun bool) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading plans dir: %w", err)
	}

	stats := &Stats{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		if dryRun {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			plan, err := ParsePlan(data)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			s.log.Info("dry run: plan file valid", "file", entry.Name(), "plan", plan.Name, "days", len(plan.Days))
			stats.PlansSkipped++
			continue
		}

		if s.state != nil {
			hash, err := HashFile(path)
			if err != nil {
				return nil, fmt.Errorf("hashing %s: %w", entry.Name(), err)
			}
			seeded, err := s.state.IsSeeded(entry.Name(), hash)
			if err != nil {
				return nil, fmt.Errorf("checking state for %s: %w", entry.Name(), err)
			}
			if seeded {
				s.log.Info("plan file already applied", "file", entry.Name())
				stats.PlansSkipped++
				continue
			}
			if err := s.seedFile(ctx, path, stats); err != nil {
				return nil, err
			}
			if err := s.state.MarkSeeded(entry.Name(), hash); err != nil {
				return nil, fmt.Errorf("recording state for %s: %w", entry.Name(), err)
			}
			continue
		}

		if err := s.seedFile(ctx, path, stats); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *Seeder) seedFile(ctx context.Context, path string, stats *Stats) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := s.apply(ctx, plan, stats); err != nil {
		return fmt.Errorf("applying %s: %w", path, err)
	}
	return nil
}

// ParsePlan decodes and validates one plan file.
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, err
	}

	if plan.Name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if plan.DaysPerWeek <= 0 {
		return nil, fmt.Errorf("daysPerWeek must be positive")
	}
	if len(plan.Days) == 0 {
		return nil, fmt.Errorf("plan has no days")
	}
	if plan.Type == "" {
		plan.Type = "weightlifting"
	}

	for di := range plan.Days {
		day := &plan.Days[di]
		if day.DayNumber <= 0 {
			return nil, fmt.Errorf("day %q: dayNumber must be positive", day.Name)
		}
		for ei := range day.Exercises {
			ex := &day.Exercises[ei]
			if ex.Name == "" || ex.MuscleGroup == "" {
				return nil, fmt.Errorf("day %q: exercise name and muscleGroup are required", day.Name)
			}
			if ex.TargetSets <= 0 {
				return nil, fmt.Errorf("exercise %q: targetSets must be positive", ex.Name)
			}
			if ex.DifficultyMultiplier == 0 {
				ex.DifficultyMultiplier = 1.0
			}
			if ex.DefaultReps == 0 {
				ex.DefaultReps = defaultRepsFromTarget(ex.TargetReps)
			}
		}
	}
	return &plan, nil
}

// defaultRepsFromTarget derives a logging default from a rep target like "5"
// or "8-12", taking the lower bound of a range.
func defaultRepsFromTarget(target string) int {
	low, _, _ := strings.Cut(target, "-")
	if n, err := strconv.Atoi(strings.TrimSpace(low)); err == nil && n > 0 {
		return n
	}
	return 8
}

func (s *Seeder) apply(ctx context.Context, plan *Plan, stats *Stats) error {
	record := &models.Plan{
		Name:        plan.Name,
		Type:        plan.Type,
		TotalWeeks:  plan.TotalWeeks,
		DaysPerWeek: plan.DaysPerWeek,
	}
	if plan.Description != "" {
		record.Description = &plan.Description
	}

	inserted, err := s.store.InsertPlanTemplate(ctx, record)
	if err != nil {
		return err
	}
	if !inserted {
		s.log.Info("plan already exists, skipping", "plan", plan.Name)
		stats.PlansSkipped++
		return nil
	}
	s.log.Info("seeding plan", "plan", plan.Name, "days", len(plan.Days))

	// Progression links resolve after all exercises exist.
	type link struct{ from, to string }
	var links []link

	for _, day := range plan.Days {
		dayRecord := &models.PlanDay{
			PlanID:      record.ID,
			DayNumber:   day.DayNumber,
			Name:        day.Name,
			WeekVariant: 1,
		}
		if err := s.store.InsertPlanDay(ctx, dayRecord); err != nil {
			return err
		}
		stats.DaysInserted++

		for i, ex := range day.Exercises {
			exRecord := &models.Exercise{
				Name:                 ex.Name,
				MuscleGroup:          ex.MuscleGroup,
				IsCompound:           ex.IsCompound,
				IsBodyweight:         ex.IsBodyweight,
				DifficultyMultiplier: ex.DifficultyMultiplier,
			}
			if err := s.store.GetOrCreateExercise(ctx, exRecord); err != nil {
				return err
			}
			stats.ExercisesSeen++

			if ex.NextProgression != "" {
				links = append(links, link{from: ex.Name, to: ex.NextProgression})
			}

			if err := s.store.InsertPlanDayExercise(ctx, &models.PlanDayExercise{
				PlanDayID:   dayRecord.ID,
				ExerciseID:  exRecord.ID,
				Order:       i + 1,
				TargetSets:  ex.TargetSets,
				TargetReps:  ex.TargetReps,
				DefaultReps: ex.DefaultReps,
				RPETarget:   ex.RPETarget,
			}); err != nil {
				return err
			}
		}
	}

	for _, l := range links {
		from, err := s.store.GetExerciseByName(ctx, l.from)
		if err != nil {
			return err
		}
		next, err := s.store.GetExerciseByName(ctx, l.to)
		if err != nil {
			return err
		}
		if next == nil {
			// The harder variation may not appear in any plan day yet.
			next = &models.Exercise{
				Name:                 l.to,
				MuscleGroup:          from.MuscleGroup,
				IsCompound:           from.IsCompound,
				IsBodyweight:         from.IsBodyweight,
				DifficultyMultiplier: from.DifficultyMultiplier,
			}
			if err := s.store.GetOrCreateExercise(ctx, next); err != nil {
				return err
			}
		}
		if err := s.store.LinkProgression(ctx, from.ID, next.ID); err != nil {
			return err
		}
		stats.LinksCreated++
	}

	stats.PlansApplied++
	return nil
}
