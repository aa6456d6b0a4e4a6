package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/chihironakai0517/workout-tracker/internal/health"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
	"github.com/chihironakai0517/workout-tracker/internal/validation"
	"github.com/chihironakai0517/workout-tracker/internal/workouts"
)

var ErrInvalidPeriod = errors.New("invalid summary period")

// GoalProgress holds actual minus goal deltas; a nil field means the goal or the data is missing.
type GoalProgress struct {
	Weight      *float64 `json:"weight,omitempty"`
	BodyFat     *float64 `json:"bodyFat,omitempty"`
	Calories    *float64 `json:"calories,omitempty"`
	Protein     *float64 `json:"protein,omitempty"`
	Carbs       *float64 `json:"carbs,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`
	WaterIntake *float64 `json:"waterIntake,omitempty"`
}

type Averages struct {
	AverageWeight      *float64 `json:"averageWeight,omitempty"`
	AverageBodyFat     *float64 `json:"averageBodyFat,omitempty"`
	AverageCalories    float64  `json:"averageCalories"`
	AverageProtein     float64  `json:"averageProtein"`
	AverageCarbs       float64  `json:"averageCarbs"`
	AverageFat         float64  `json:"averageFat"`
	AverageWaterIntake float64  `json:"averageWaterIntake"`
}

type WeeklySummary struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Averages
	TotalWorkouts int          `json:"totalWorkouts"`
	GoalProgress  GoalProgress `json:"goalProgress"`
}

type MonthlySummary struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Averages
	TotalWorkouts  int             `json:"totalWorkouts"`
	WeeklyProgress []WeeklySummary `json:"weeklyProgress"`
	GoalProgress   GoalProgress    `json:"goalProgress"`
}

type measurementsSource interface {
	GetAll(ctx context.Context) ([]health.BodyMeasurement, error)
}

type nutritionSource interface {
	GetAllDailyNutrition(ctx context.Context) ([]health.DailyNutrition, error)
}

type goalsSource interface {
	GetGoals(ctx context.Context) (*health.Goals, error)
}

type workoutsSource interface {
	GetWorkouts(ctx context.Context) ([]workouts.Workout, error)
}

type Service struct {
	measurements measurementsSource
	nutrition    nutritionSource
	goals        goalsSource
	workouts     workoutsSource
}

func NewService(
	measurements measurementsSource,
	nutrition nutritionSource,
	goals goalsSource,
	workouts workoutsSource,
) *Service {
	return &Service{
		measurements: measurements,
		nutrition:    nutrition,
		goals:        goals,
		workouts:     workouts,
	}
}

// snapshot is everything a summary reads, loaded once per request.
type snapshot struct {
	measurements []health.BodyMeasurement
	nutrition    []health.DailyNutrition
	goals        *health.Goals
	workouts     []workouts.Workout
}

func (s *Service) load(ctx context.Context) (*snapshot, error) {
	var (
		snap snapshot
		err  error
	)
	if snap.measurements, err = s.measurements.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("get measurements: %w", err)
	}
	if snap.nutrition, err = s.nutrition.GetAllDailyNutrition(ctx); err != nil {
		return nil, fmt.Errorf("get nutrition: %w", err)
	}
	if snap.goals, err = s.goals.GetGoals(ctx); err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}
	if snap.workouts, err = s.workouts.GetWorkouts(ctx); err != nil {
		return nil, fmt.Errorf("get workouts: %w", err)
	}
	return &snap, nil
}

// GetWeeklySummary summarizes the 7 days starting at startDate (YYYY-MM-DD).
func (s *Service) GetWeeklySummary(ctx context.Context, startDate string) (_ *WeeklySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "summary.weekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("summary.start", startDate))

	start, err := time.Parse(validation.DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date [%s]", ErrInvalidPeriod, startDate)
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	weekly := snap.weekly(start)
	return &weekly, nil
}

// GetMonthlySummary summarizes a calendar month; month is 1-12.
func (s *Service) GetMonthlySummary(ctx context.Context, year, month int) (_ *MonthlySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "summary.monthly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("summary.year", year), attribute.Int("summary.month", month))

	if month < 1 || month > 12 || year < 1 {
		return nil, fmt.Errorf("%w: %d-%d", ErrInvalidPeriod, year, month)
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	measurements := measurementsBetween(snap.measurements, start, end)
	nutrition := nutritionBetween(snap.nutrition, start, end)

	summary := MonthlySummary{
		Year:           year,
		Month:          month,
		Averages:       averages(measurements, nutrition),
		WeeklyProgress: []WeeklySummary{},
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 7) {
		weekly := snap.weekly(day)
		summary.WeeklyProgress = append(summary.WeeklyProgress, weekly)
		summary.TotalWorkouts += weekly.TotalWorkouts
	}
	summary.GoalProgress = summary.WeeklyProgress[len(summary.WeeklyProgress)-1].GoalProgress

	return &summary, nil
}

func (snap *snapshot) weekly(start time.Time) WeeklySummary {
	end := start.AddDate(0, 0, 6)

	measurements := measurementsBetween(snap.measurements, start, end)
	nutrition := nutritionBetween(snap.nutrition, start, end)

	avg := averages(measurements, nutrition)
	return WeeklySummary{
		StartDate:     start.Format(validation.DateLayout),
		EndDate:       end.Format(validation.DateLayout),
		Averages:      avg,
		TotalWorkouts: workoutsBetween(snap.workouts, start, end),
		GoalProgress:  goalProgress(snap.goals, measurements, len(nutrition) > 0, avg),
	}
}

func inRange(date string, start, end time.Time) bool {
	// ISO dates compare lexically
	return date >= start.Format(validation.DateLayout) && date <= end.Format(validation.DateLayout)
}

func measurementsBetween(all []health.BodyMeasurement, start, end time.Time) []health.BodyMeasurement {
	var out []health.BodyMeasurement
	for _, m := range all {
		if inRange(m.Date, start, end) {
			out = append(out, m)
		}
	}
	return out
}

// nutritionBetween keeps only the days in range that have something recorded.
func nutritionBetween(all []health.DailyNutrition, start, end time.Time) []health.DailyNutrition {
	var out []health.DailyNutrition
	for _, d := range all {
		if inRange(d.Date, start, end) && d.HasContent() {
			out = append(out, d)
		}
	}
	return out
}

func workoutsBetween(all []workouts.Workout, start, end time.Time) int {
	count := 0
	for _, w := range all {
		if inRange(w.Date, start, end) {
			count++
		}
	}
	return count
}

func averages(measurements []health.BodyMeasurement, nutrition []health.DailyNutrition) Averages {
	var avg Averages

	if len(measurements) > 0 {
		var weightSum, bodyFatSum float64
		bodyFatCount := 0
		for _, m := range measurements {
			weightSum += m.Weight
			if m.BodyFat != nil {
				bodyFatSum += *m.BodyFat
				bodyFatCount++
			}
		}
		avgWeight := weightSum / float64(len(measurements))
		avg.AverageWeight = &avgWeight
		if bodyFatCount > 0 {
			avgBodyFat := bodyFatSum / float64(bodyFatCount)
			avg.AverageBodyFat = &avgBodyFat
		}
	}

	days := float64(max(len(nutrition), 1))
	for _, d := range nutrition {
		avg.AverageCalories += d.TotalCalories
		avg.AverageProtein += d.TotalProtein
		avg.AverageCarbs += d.TotalCarbs
		avg.AverageFat += d.TotalFat
		avg.AverageWaterIntake += d.WaterIntake
	}
	avg.AverageCalories /= days
	avg.AverageProtein /= days
	avg.AverageCarbs /= days
	avg.AverageFat /= days
	avg.AverageWaterIntake /= days

	return avg
}

func goalProgress(goals *health.Goals, measurements []health.BodyMeasurement, hasNutrition bool, avg Averages) GoalProgress {
	var progress GoalProgress
	if goals == nil {
		return progress
	}

	if len(measurements) > 0 {
		last := measurements[len(measurements)-1]
		if isSet(goals.TargetWeight) {
			progress.Weight = delta(last.Weight, *goals.TargetWeight)
		}
		if isSet(goals.TargetBodyFat) && last.BodyFat != nil {
			progress.BodyFat = delta(*last.BodyFat, *goals.TargetBodyFat)
		}
	}

	if !hasNutrition {
		return progress
	}
	if isSet(goals.DailyCalories) {
		progress.Calories = delta(avg.AverageCalories, *goals.DailyCalories)
	}
	if isSet(goals.DailyProtein) {
		progress.Protein = delta(avg.AverageProtein, *goals.DailyProtein)
	}
	if isSet(goals.DailyCarbs) {
		progress.Carbs = delta(avg.AverageCarbs, *goals.DailyCarbs)
	}
	if isSet(goals.DailyFat) {
		progress.Fat = delta(avg.AverageFat, *goals.DailyFat)
	}
	if isSet(goals.DailyWaterIntake) {
		progress.WaterIntake = delta(avg.AverageWaterIntake, *goals.DailyWaterIntake)
	}
	return progress
}

// isSet treats a zero goal like an unset one.
func isSet(goal *float64) bool {
	return goal != nil && *goal != 0
}

func delta(actual, goal float64) *float64 {
	d := actual - goal
	return &d
}
