package workouts

import (
	"context"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
)

// ProgressPoint is the heaviest weight lifted for an exercise on a given day.
type ProgressPoint struct {
	Date      string  `json:"date"`
	MaxWeight float64 `json:"maxWeight"`
}

type Analyzer struct {
	repo workoutsRepo
}

func NewAnalyzer(repo workoutsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// ExerciseProgress returns, per workout date, the max weight of the named
// weight exercise, sorted by date ascending.
func (a *Analyzer) ExerciseProgress(ctx context.Context, exerciseName string) (_ []ProgressPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.exercise-progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exerciseName))

	workouts, err := a.repo.GetWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	maxPerDate := map[string]float64{}
	for _, w := range workouts {
		for _, g := range w.MuscleGroups {
			for _, e := range g.Exercises {
				if e.Type != ExerciseTypeWeight || !strings.EqualFold(e.Name, exerciseName) {
					continue
				}
				if current, ok := maxPerDate[w.Date]; !ok || e.Weight > current {
					maxPerDate[w.Date] = e.Weight
				}
			}
		}
	}

	points := make([]ProgressPoint, 0, len(maxPerDate))
	for date, weight := range maxPerDate {
		points = append(points, ProgressPoint{Date: date, MaxWeight: weight})
	}
	// ISO dates sort lexically
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points, nil
}
