package training

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/lifttrack/internal/models"
	"github.com/google/uuid"
)

// testNow is a Wednesday evening; its ISO week runs Mon Jan 12 – Sun Jan 18.
var testNow = time.Date(2026, 1, 14, 18, 0, 0, 0, time.UTC)

func testEngine(f *fakeStore) *Engine {
	return New(f, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var planDayNames = []string{"", "Push", "Pull", "Legs", "Upper", "Lower"}

// seedUserWithPlan creates a user on a fresh plan with the given number of
// training days per week.
func seedUserWithPlan(f *fakeStore, daysPerWeek int, startDate time.Time) *models.User {
	plan := &models.Plan{ID: uuid.New(), Name: "Push Pull Legs", DaysPerWeek: daysPerWeek, IsTemplate: true}
	f.plans[plan.ID] = plan
	for day := 1; day <= daysPerWeek; day++ {
		f.planDays = append(f.planDays, &models.PlanDay{
			ID:          uuid.New(),
			PlanID:      plan.ID,
			DayNumber:   day,
			Name:        planDayNames[day],
			WeekVariant: 1,
		})
	}

	user := &models.User{
		ID:            uuid.New(),
		Email:         "lifter@example.com",
		CurrentPlanID: &plan.ID,
		PlanStartDate: &startDate,
		WeightUnit:    "kg",
	}
	f.users[user.ID] = user
	return user
}

func seedExercise(f *fakeStore, name, muscleGroup string, bodyweight bool, difficulty float64) *models.Exercise {
	ex := &models.Exercise{
		ID:                   uuid.New(),
		Name:                 name,
		MuscleGroup:          muscleGroup,
		IsBodyweight:         bodyweight,
		DifficultyMultiplier: difficulty,
	}
	f.exercises[ex.ID] = ex
	return ex
}

func (f *fakeStore) planDayForNumber(t *testing.T, planID uuid.UUID, day int) *models.PlanDay {
	t.Helper()
	pd, err := f.GetPlanDayByNumber(context.Background(), planID, day)
	if err != nil {
		t.Fatalf("plan day %d: %v", day, err)
	}
	return pd
}

// seedCompletedSession inserts a session that started at the given time and
// ended an hour later.
func seedCompletedSession(f *fakeStore, user *models.User, planDayID uuid.UUID, startedAt time.Time) *models.Session {
	endedAt := startedAt.Add(time.Hour)
	s := &models.Session{
		ID:         uuid.New(),
		UserID:     user.ID,
		PlanDayID:  planDayID,
		StartedAt:  startedAt,
		EndedAt:    &endedAt,
		WeekNumber: 1,
		DayInWeek:  1,
	}
	f.sessions[s.ID] = s
	return s
}

// TestStatusNoPlan verifies a user without an assigned plan resolves to
// no_plan before anything else is consulted.
func TestStatusNoPlan(t *testing.T) {
	f := newFakeStore()
	user := &models.User{ID: uuid.New()}
	f.users[user.ID] = user

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusNoPlan {
		t.Errorf("type = %q, want %q", status.Type, StatusNoPlan)
	}
}

// TestStatusNoPlanMissingStartDate verifies a plan without a start date is
// treated the same as no plan.
func TestStatusNoPlanMissingStartDate(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 3, testNow)
	user.PlanStartDate = nil

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusNoPlan {
		t.Errorf("type = %q, want %q", status.Type, StatusNoPlan)
	}
}

// TestStatusReadyToTrainFirstDay verifies the end-to-end scenario of a brand
// new user: plan starting today, no sessions, resolves to ready_to_train for
// program week 1, day 1.
func TestStatusReadyToTrainFirstDay(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 3, testNow)

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusReadyToTrain {
		t.Fatalf("type = %q, want %q", status.Type, StatusReadyToTrain)
	}
	if status.TrainingDay.WeekNumber != 1 {
		t.Errorf("week number = %d, want 1", status.TrainingDay.WeekNumber)
	}
	if status.TrainingDay.DayNumber != 1 {
		t.Errorf("day number = %d, want 1", status.TrainingDay.DayNumber)
	}
	if status.TrainingDay.DayName != "Push" {
		t.Errorf("day name = %q, want %q", status.TrainingDay.DayName, "Push")
	}
}

// TestStatusProgramWeekLabel verifies the program week is derived from whole
// days since the plan start: 10 days in is week 2.
func TestStatusProgramWeekLabel(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 3, testNow.AddDate(0, 0, -10))

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusReadyToTrain {
		t.Fatalf("type = %q, want %q", status.Type, StatusReadyToTrain)
	}
	if status.TrainingDay.WeekNumber != 2 {
		t.Errorf("week number = %d, want 2", status.TrainingDay.WeekNumber)
	}
}

// TestStatusNextDayFollowsSessions verifies the next day-in-week is the count
// of completed sessions this week plus one.
func TestStatusNextDayFollowsSessions(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 3, testNow.AddDate(0, 0, -7))
	day1 := f.planDayForNumber(t, *user.CurrentPlanID, 1)
	// Monday of the current week, so it counts toward this week but is not
	// yesterday or today.
	seedCompletedSession(f, user, day1.ID, time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC))

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusReadyToTrain {
		t.Fatalf("type = %q, want %q", status.Type, StatusReadyToTrain)
	}
	if status.TrainingDay.DayNumber != 2 {
		t.Errorf("day number = %d, want 2", status.TrainingDay.DayNumber)
	}
	if status.SessionsThisWeek != 1 {
		t.Errorf("sessions this week = %d, want 1", status.SessionsThisWeek)
	}
}

// TestStatusSessionInProgress verifies an open session today resolves to
// session_in_progress with its set count attached.
func TestStatusSessionInProgress(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 3, testNow.AddDate(0, 0, -1))
	day1 := f.planDayForNumber(t, *user.CurrentPlanID, 1)
	bench := seedExercise(f, "Bench Press", "Chest", false, 1.0)

	session := &models.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		PlanDayID: day1.ID,
		StartedAt: testNow.Add(-30 * time.Minute),
	}
	f.sessions[session.ID] = session
	for i := 1; i <= 2; i++ {
		f.InsertSet(context.Background(), &models.SessionSet{
			SessionID: session.ID, ExerciseID: bench.ID, SetNumber: i, Weight: 80, Reps: 8,
		})
	}

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusSessionInProgress {
		t.Fatalf("type = %q, want %q", status.Type, StatusSessionInProgress)
	}
	if status.InProgress.SessionID != session.ID {
		t.Errorf("session id = %v, want %v", status.InProgress.SessionID, session.ID)
	}
	if status.InProgress.PlanDayName != "Push" {
		t.Errorf("plan day name = %q, want %q", status.InProgress.PlanDayName, "Push")
	}
	if status.InProgress.SetsLogged != 2 {
		t.Errorf("sets logged = %d, want 2", status.InProgress.SetsLogged)
	}
}

// TestStatusInProgressBeatsTrainedToday pins the priority contract: a user
// with a completed session today AND a later in-progress session resolves to
// session_in_progress, never trained_today.
func TestStatusInProgressBeatsTrainedToday(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 3, testNow.AddDate(0, 0, -1))
	day1 := f.planDayForNumber(t, *user.CurrentPlanID, 1)

	seedCompletedSession(f, user, day1.ID, testNow.Add(-6*time.Hour))
	open := &models.Session{ID: uuid.New(), UserID: user.ID, PlanDayID: day1.ID, StartedAt: testNow.Add(-10 * time.Minute)}
	f.sessions[open.ID] = open

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusSessionInProgress {
		t.Errorf("type = %q, want %q", status.Type, StatusSessionInProgress)
	}
}

// TestStatusTrainedToday verifies a completed session today resolves to
// trained_today with a per-exercise summary.
func TestStatusTrainedToday(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 3, testNow.AddDate(0, 0, -1))
	day1 := f.planDayForNumber(t, *user.CurrentPlanID, 1)
	bench := seedExercise(f, "Bench Press", "Chest", false, 1.0)
	ohp := seedExercise(f, "Overhead Press", "Shoulders", false, 1.0)

	session := seedCompletedSession(f, user, day1.ID, testNow.Add(-4*time.Hour))
	for i := 1; i <= 3; i++ {
		f.InsertSet(context.Background(), &models.SessionSet{SessionID: session.ID, ExerciseID: bench.ID, SetNumber: i, Weight: 80, Reps: 8})
	}
	f.InsertSet(context.Background(), &models.SessionSet{SessionID: session.ID, ExerciseID: ohp.ID, SetNumber: 1, Weight: 40, Reps: 10})
	// Warmups don't count toward the summary.
	f.InsertSet(context.Background(), &models.SessionSet{SessionID: session.ID, ExerciseID: bench.ID, SetNumber: 1, Weight: 40, Reps: 10, IsWarmup: true})

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusTrainedToday {
		t.Fatalf("type = %q, want %q", status.Type, StatusTrainedToday)
	}
	if status.TrainedToday.TotalSets != 4 {
		t.Errorf("total sets = %d, want 4", status.TrainedToday.TotalSets)
	}
	if len(status.TrainedToday.Exercises) != 2 {
		t.Errorf("exercise count = %d, want 2", len(status.TrainedToday.Exercises))
	}
}

// TestStatusRecoveryDay verifies a completed session yesterday (calendar day,
// not a 24-hour window) with nothing today resolves to recovery_day.
func TestStatusRecoveryDay(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 3, testNow.AddDate(0, 0, -7))
	day1 := f.planDayForNumber(t, *user.CurrentPlanID, 1)
	// 23:30 yesterday is within the last 24 hours but is still "yesterday".
	seedCompletedSession(f, user, day1.ID, time.Date(2026, 1, 13, 23, 30, 0, 0, time.UTC))

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusRecoveryDay {
		t.Errorf("type = %q, want %q", status.Type, StatusRecoveryDay)
	}
}

// TestStatusWeekComplete verifies completing as many sessions as the plan has
// days resolves to week_complete when today and yesterday are rest days.
func TestStatusWeekComplete(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 2, testNow.AddDate(0, 0, -14))
	day1 := f.planDayForNumber(t, *user.CurrentPlanID, 1)
	day2 := f.planDayForNumber(t, *user.CurrentPlanID, 2)
	// Both on Monday of the current week, two days before the reference time.
	seedCompletedSession(f, user, day1.ID, time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC))
	seedCompletedSession(f, user, day2.ID, time.Date(2026, 1, 12, 18, 0, 0, 0, time.UTC))

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusWeekComplete {
		t.Fatalf("type = %q, want %q", status.Type, StatusWeekComplete)
	}
	if status.SessionsThisWeek != 2 {
		t.Errorf("sessions this week = %d, want 2", status.SessionsThisWeek)
	}
}

// TestStatusMissingPlanDayFallsBack verifies a misconfigured plan (next
// day-in-week has no plan day) resolves to no_plan instead of failing.
func TestStatusMissingPlanDayFallsBack(t *testing.T) {
	f := newFakeStore()
	user := seedUserWithPlan(f, 3, testNow.AddDate(0, 0, -7))
	day1 := f.planDayForNumber(t, *user.CurrentPlanID, 1)
	// One session done this week, so the next day-in-week is 2 — which is
	// missing from the plan.
	seedCompletedSession(f, user, day1.ID, time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC))
	var kept []*models.PlanDay
	for _, d := range f.planDays {
		if d.DayNumber != 2 {
			kept = append(kept, d)
		}
	}
	f.planDays = kept

	status, err := testEngine(f).Status(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Type != StatusNoPlan {
		t.Errorf("type = %q, want %q", status.Type, StatusNoPlan)
	}
}
