package workouts

import (
	"errors"
)

const (
	WorkoutHistoryKey  = "workout-history"
	CustomExercisesKey = "custom-exercises"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type ExerciseType string

const (
	ExerciseTypeWeight ExerciseType = "weight"
	ExerciseTypeCardio ExerciseType = "cardio"
)

func (t ExerciseType) String() string {
	return string(t)
}

func (t ExerciseType) IsValid() bool {
	return t == ExerciseTypeWeight || t == ExerciseTypeCardio
}

// Exercise is either a weight exercise (weight, reps, sets)
// or a cardio exercise (duration in minutes, distance in km, calories).
type Exercise struct {
	Type ExerciseType `json:"type" validate:"oneof=weight cardio"`
	Name string       `json:"name" validate:"required"`

	Weight float64 `json:"weight,omitempty" validate:"gte=0"`
	Reps   int     `json:"reps,omitempty" validate:"gte=0"`
	Sets   int     `json:"sets,omitempty" validate:"gte=0"`

	Duration float64 `json:"duration,omitempty" validate:"gte=0"`
	Distance float64 `json:"distance,omitempty" validate:"gte=0"`
	Calories float64 `json:"calories,omitempty" validate:"gte=0"`
}

func (e Exercise) IsCardio() bool {
	return e.Type == ExerciseTypeCardio
}

type MuscleGroup struct {
	ID        string     `json:"id" validate:"required"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises" validate:"dive"`
}

type Workout struct {
	ID            string        `json:"id"`
	Date          string        `json:"date" validate:"required,date"`
	MuscleGroups  []MuscleGroup `json:"muscleGroups" validate:"dive"`
	TotalCalories float64       `json:"totalCalories"`
}

type WorkoutSummary struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	ExerciseCount int     `json:"exerciseCount"`
	TotalCalories float64 `json:"totalCalories"`
}

// DefaultMuscleGroups returns a fresh, empty set of the standard groups.
func DefaultMuscleGroups() []MuscleGroup {
	return []MuscleGroup{
		{ID: "chest", Name: "Chest", Exercises: []Exercise{}},
		{ID: "back", Name: "Back", Exercises: []Exercise{}},
		{ID: "shoulders", Name: "Shoulders", Exercises: []Exercise{}},
		{ID: "arms", Name: "Arms", Exercises: []Exercise{}},
		{ID: "legs", Name: "Legs", Exercises: []Exercise{}},
		{ID: "abs", Name: "Abs", Exercises: []Exercise{}},
		{ID: "cardio", Name: "Cardio", Exercises: []Exercise{}},
	}
}

func (w *Workout) ExerciseCount() int {
	count := 0
	for _, g := range w.MuscleGroups {
		count += len(g.Exercises)
	}
	return count
}

// CardioCalories sums the calories of all cardio exercises.
func (w *Workout) CardioCalories() float64 {
	total := 0.0
	for _, g := range w.MuscleGroups {
		for _, e := range g.Exercises {
			if e.IsCardio() {
				total += e.Calories
			}
		}
	}
	return total
}

func (w *Workout) Summary() WorkoutSummary {
	return WorkoutSummary{
		ID:            w.ID,
		Date:          w.Date,
		ExerciseCount: w.ExerciseCount(),
		TotalCalories: w.TotalCalories,
	}
}
