package training

import (
	"context"
	"sort"
	"time"

	"github.com/claude/lifttrack/internal/gamification"
	"github.com/claude/lifttrack/internal/models"
	"github.com/google/uuid"
)

// fakeStore is an in-memory Store for engine tests. It reproduces the query
// semantics the engine relies on (half-open time ranges, completed-only
// filters, warmup exclusion) without a database.
type fakeStore struct {
	users            map[uuid.UUID]*models.User
	plans            map[uuid.UUID]*models.Plan
	planDays         []*models.PlanDay
	planDayExercises map[uuid.UUID][]models.PlanDayExerciseDetail
	exercises        map[uuid.UUID]*models.Exercise
	sessions         map[uuid.UUID]*models.Session
	sets             []*models.SessionSet
	muscleXP         map[string]*models.MuscleGroupXP
	grantLog         []appliedGrants

	applyErr error // injected ApplyXPGrants failure
	setClock time.Time
}

type appliedGrants struct {
	userID    uuid.UUID
	sessionID uuid.UUID
	grants    []XPGrant
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:            make(map[uuid.UUID]*models.User),
		plans:            make(map[uuid.UUID]*models.Plan),
		planDayExercises: make(map[uuid.UUID][]models.PlanDayExerciseDetail),
		exercises:        make(map[uuid.UUID]*models.Exercise),
		sessions:         make(map[uuid.UUID]*models.Session),
		muscleXP:         make(map[string]*models.MuscleGroupXP),
		setClock:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetPlan(_ context.Context, id uuid.UUID) (*models.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) CountDistinctPlanDays(_ context.Context, planID uuid.UUID) (int, error) {
	days := make(map[int]bool)
	for _, d := range f.planDays {
		if d.PlanID == planID {
			days[d.DayNumber] = true
		}
	}
	return len(days), nil
}

func (f *fakeStore) GetPlanDay(_ context.Context, id uuid.UUID) (*models.PlanDay, error) {
	for _, d := range f.planDays {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) GetPlanDayByNumber(_ context.Context, planID uuid.UUID, dayNumber int) (*models.PlanDay, error) {
	for _, d := range f.planDays {
		if d.PlanID == planID && d.DayNumber == dayNumber {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) GetPlanDayExercises(_ context.Context, planDayID uuid.UUID) ([]models.PlanDayExerciseDetail, error) {
	return f.planDayExercises[planDayID], nil
}

func (f *fakeStore) CreateSession(_ context.Context, userID, planDayID uuid.UUID, startedAt time.Time, weekNumber, dayInWeek int) (*models.Session, error) {
	s := &models.Session{
		ID:         uuid.New(),
		UserID:     userID,
		PlanDayID:  planDayID,
		StartedAt:  startedAt,
		WeekNumber: weekNumber,
		DayInWeek:  dayInWeek,
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeStore) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (f *fakeStore) InProgressSession(_ context.Context, userID uuid.UUID, start, end time.Time) (*models.Session, error) {
	for _, s := range f.sessions {
		if s.UserID == userID && s.EndedAt == nil && !s.StartedAt.Before(start) && s.StartedAt.Before(end) {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) LatestCompletedSession(_ context.Context, userID uuid.UUID, start, end time.Time) (*models.Session, error) {
	var latest *models.Session
	for _, s := range f.sessions {
		if s.UserID != userID || s.EndedAt == nil || s.StartedAt.Before(start) || !s.StartedAt.Before(end) {
			continue
		}
		if latest == nil || s.StartedAt.After(latest.StartedAt) {
			latest = s
		}
	}
	return latest, nil
}

func (f *fakeStore) CountCompletedSessions(_ context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	count := 0
	for _, s := range f.sessions {
		if s.UserID == userID && s.EndedAt != nil && !s.StartedAt.Before(start) && s.StartedAt.Before(end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountCompletedSessionsTotal(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, s := range f.sessions {
		if s.UserID == userID && s.EndedAt != nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) RecentCompletedSessions(_ context.Context, userID uuid.UUID, limit int) ([]models.Session, error) {
	var result []models.Session
	for _, s := range f.sessions {
		if s.UserID == userID && s.EndedAt != nil {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartedAt.After(result[j].StartedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeStore) EndSession(_ context.Context, sessionID uuid.UUID, endedAt time.Time, notes *string) (bool, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return false, ErrNotFound
	}
	if s.EndedAt != nil {
		return false, nil
	}
	s.EndedAt = &endedAt
	s.Notes = notes
	return true, nil
}

func (f *fakeStore) UpdateSessionTimes(_ context.Context, sessionID uuid.UUID, startedAt, endedAt time.Time) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	s.StartedAt = startedAt
	s.EndedAt = &endedAt
	return nil
}

func (f *fakeStore) UpdateSessionNotes(_ context.Context, sessionID uuid.UUID, notes *string) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	s.Notes = notes
	return nil
}

func (f *fakeStore) DeleteSession(_ context.Context, sessionID uuid.UUID) error {
	delete(f.sessions, sessionID)
	kept := f.sets[:0]
	for _, set := range f.sets {
		if set.SessionID != sessionID {
			kept = append(kept, set)
		}
	}
	f.sets = kept
	return nil
}

func (f *fakeStore) InsertSet(_ context.Context, set *models.SessionSet) error {
	set.ID = uuid.New()
	f.setClock = f.setClock.Add(time.Second)
	set.CreatedAt = f.setClock
	f.sets = append(f.sets, set)
	return nil
}

func (f *fakeStore) CountSets(_ context.Context, sessionID uuid.UUID) (int, error) {
	count := 0
	for _, set := range f.sets {
		if set.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) NonWarmupSetCounts(_ context.Context, sessionID uuid.UUID) ([]models.ExerciseSetCount, error) {
	counts := make(map[uuid.UUID]int)
	var order []uuid.UUID
	for _, set := range f.sets {
		if set.SessionID != sessionID || set.IsWarmup {
			continue
		}
		if _, ok := counts[set.ExerciseID]; !ok {
			order = append(order, set.ExerciseID)
		}
		counts[set.ExerciseID]++
	}

	result := make([]models.ExerciseSetCount, 0, len(order))
	for _, exID := range order {
		name := ""
		if ex, ok := f.exercises[exID]; ok {
			name = ex.Name
		}
		result = append(result, models.ExerciseSetCount{ExerciseID: exID, ExerciseName: name, Sets: counts[exID]})
	}
	return result, nil
}

func (f *fakeStore) SessionSetsForXP(_ context.Context, sessionID uuid.UUID) ([]models.SetWithExercise, error) {
	var result []models.SetWithExercise
	for _, set := range f.sets {
		if set.SessionID != sessionID || set.IsWarmup {
			continue
		}
		ex := f.exercises[set.ExerciseID]
		result = append(result, models.SetWithExercise{
			ExerciseID:           set.ExerciseID,
			MuscleGroup:          ex.MuscleGroup,
			IsBodyweight:         ex.IsBodyweight,
			DifficultyMultiplier: ex.DifficultyMultiplier,
			Weight:               set.Weight,
			Reps:                 set.Reps,
		})
	}
	return result, nil
}

func (f *fakeStore) PreviousSet(_ context.Context, userID, exerciseID, excludeSessionID uuid.UUID) (*models.SetRef, error) {
	var latest *models.SessionSet
	for _, set := range f.sets {
		if set.ExerciseID != exerciseID || set.IsWarmup || set.SessionID == excludeSessionID {
			continue
		}
		session, ok := f.sessions[set.SessionID]
		if !ok || session.UserID != userID || session.EndedAt == nil {
			continue
		}
		if latest == nil || set.CreatedAt.After(latest.CreatedAt) {
			latest = set
		}
	}
	if latest == nil {
		return nil, nil
	}
	return &models.SetRef{Weight: latest.Weight, Reps: latest.Reps}, nil
}

func (f *fakeStore) UpdateSet(_ context.Context, setID uuid.UUID, weight float64, reps int) error {
	for _, set := range f.sets {
		if set.ID == setID {
			set.Weight = weight
			set.Reps = reps
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStore) DeleteSet(_ context.Context, setID uuid.UUID) error {
	for i, set := range f.sets {
		if set.ID == setID {
			f.sets = append(f.sets[:i], f.sets[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStore) HasCompletionPlaceholder(_ context.Context, sessionID, exerciseID uuid.UUID) (bool, error) {
	for _, set := range f.sets {
		if set.SessionID == sessionID && set.ExerciseID == exerciseID && set.SetNumber == 0 && set.IsWarmup {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertCompletionPlaceholder(ctx context.Context, sessionID, exerciseID uuid.UUID) error {
	return f.InsertSet(ctx, &models.SessionSet{
		SessionID:  sessionID,
		ExerciseID: exerciseID,
		SetNumber:  0,
		IsWarmup:   true,
	})
}

func (f *fakeStore) DeleteCompletionPlaceholder(_ context.Context, sessionID, exerciseID uuid.UUID) error {
	for i, set := range f.sets {
		if set.SessionID == sessionID && set.ExerciseID == exerciseID && set.SetNumber == 0 && set.IsWarmup {
			f.sets = append(f.sets[:i], f.sets[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) ApplyXPGrants(_ context.Context, userID, sessionID uuid.UUID, grants []XPGrant) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.grantLog = append(f.grantLog, appliedGrants{userID: userID, sessionID: sessionID, grants: grants})
	for _, g := range grants {
		row := f.muscleXP[g.MuscleGroup]
		if row == nil {
			row = &models.MuscleGroupXP{ID: uuid.New(), UserID: userID, MuscleGroup: g.MuscleGroup}
			f.muscleXP[g.MuscleGroup] = row
		}
		row.TotalXP += g.TotalXP
		row.CurrentLevel = gamification.LevelForXP(row.TotalXP)
	}
	return nil
}

func (f *fakeStore) MuscleGroupXP(_ context.Context, userID uuid.UUID) ([]models.MuscleGroupXP, error) {
	var result []models.MuscleGroupXP
	for _, row := range f.muscleXP {
		if row.UserID == userID {
			result = append(result, *row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MuscleGroup < result[j].MuscleGroup })
	return result, nil
}

func (f *fakeStore) SessionXPSummaries(_ context.Context, userID uuid.UUID, limit int) ([]SessionXPSummary, error) {
	var result []SessionXPSummary
	for _, applied := range f.grantLog {
		if applied.userID != userID {
			continue
		}
		point := SessionXPSummary{SessionID: applied.sessionID}
		if s, ok := f.sessions[applied.sessionID]; ok {
			point.Date = s.StartedAt
		}
		for _, g := range applied.grants {
			point.Volume += g.BaseXP
			point.XPGained += g.TotalXP
		}
		result = append(result, point)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ Store = (*fakeStore)(nil)
