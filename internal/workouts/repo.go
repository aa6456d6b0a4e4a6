package workouts

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/chihironakai0517/workout-tracker/internal/store"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
)

// BodyWeightSource provides the most recently measured body weight, if any.
type BodyWeightSource interface {
	LatestWeight(ctx context.Context) (float64, bool)
}

type Repo struct {
	history       *store.Collection[Workout]
	weights       BodyWeightSource
	defaultWeight float64
	newID         func() string
}

// NewRepo creates the workout history repo. weights may be nil.
func NewRepo(kv store.KV, weights BodyWeightSource, defaultWeight float64) *Repo {
	if defaultWeight <= 0 {
		defaultWeight = DefaultBodyWeight
	}
	return &Repo{
		history:       store.NewCollection[Workout](kv, WorkoutHistoryKey),
		weights:       weights,
		defaultWeight: defaultWeight,
		newID:         uuid.NewString,
	}
}

// BodyWeight is the weight used for calorie estimates.
func (r *Repo) BodyWeight(ctx context.Context) float64 {
	if r.weights != nil {
		if w, ok := r.weights.LatestWeight(ctx); ok && w > 0 {
			return w
		}
	}
	return r.defaultWeight
}

// SaveWorkout assigns an id when missing, fills in cardio calories
// for known activities and appends the workout to the history.
// A workout with an id already in the history replaces the stored one in place.
func (r *Repo) SaveWorkout(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if workout.ID == "" {
		workout.ID = r.newID()
	}
	span.SetAttributes(attribute.String("workout.id", workout.ID))

	weight := r.BodyWeight(ctx)
	for gi := range workout.MuscleGroups {
		group := &workout.MuscleGroups[gi]
		if group.Exercises == nil {
			group.Exercises = []Exercise{}
		}
		for ei := range group.Exercises {
			ex := &group.Exercises[ei]
			if !ex.IsCardio() || ex.Calories > 0 {
				continue
			}
			if kind, ok := ParseCardioKind(ex.Name); ok {
				ex.Calories = CalculateCardioCalories(kind, ex.Duration, ex.Distance, weight)
			}
		}
	}
	workout.TotalCalories = workout.CardioCalories()

	r.history.Mutate(ctx, func(items []Workout) ([]Workout, bool) {
		if idx := slices.IndexFunc(items, func(w Workout) bool { return w.ID == workout.ID }); idx >= 0 {
			items[idx] = workout
			return items, true
		}
		return append(items, workout), true
	})

	log.Debugf("workout [%s] saved for %s, %d exercises", workout.ID, workout.Date, workout.ExerciseCount())
	return &workout, nil
}

func (r *Repo) GetWorkouts(ctx context.Context) ([]Workout, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer span.End()
	return r.history.Load(ctx), nil
}

func (r *Repo) GetWorkoutByID(ctx context.Context, id string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	for _, w := range r.history.Load(ctx) {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
}

func (r *Repo) GetWorkoutSummaries(ctx context.Context) ([]WorkoutSummary, error) {
	workouts, err := r.GetWorkouts(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]WorkoutSummary, 0, len(workouts))
	for _, w := range workouts {
		summaries = append(summaries, w.Summary())
	}
	return summaries, nil
}

// GetLastWorkout returns the most recently appended workout, or nil.
func (r *Repo) GetLastWorkout(ctx context.Context) (*Workout, error) {
	workouts, err := r.GetWorkouts(ctx)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, nil
	}
	last := workouts[len(workouts)-1]
	return &last, nil
}

func (r *Repo) DeleteWorkout(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	found := false
	r.history.Mutate(ctx, func(items []Workout) ([]Workout, bool) {
		before := len(items)
		items = slices.DeleteFunc(items, func(w Workout) bool { return w.ID == id })
		found = len(items) != before
		return items, found
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	return nil
}

// Merge appends the workouts whose ids are not stored yet and returns how many were added.
func (r *Repo) Merge(ctx context.Context, workouts []Workout) int {
	added := 0
	r.history.Mutate(ctx, func(items []Workout) ([]Workout, bool) {
		seen := make(map[string]struct{}, len(items))
		for _, w := range items {
			seen[w.ID] = struct{}{}
		}
		for _, w := range workouts {
			if _, ok := seen[w.ID]; ok {
				continue
			}
			seen[w.ID] = struct{}{}
			items = append(items, w)
			added++
		}
		return items, added > 0
	})
	return added
}
