package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/chihironakai0517/workout-tracker/internal/datasync"
	"github.com/chihironakai0517/workout-tracker/internal/health"
	"github.com/chihironakai0517/workout-tracker/internal/summary"
	"github.com/chihironakai0517/workout-tracker/internal/validation"
	"github.com/chihironakai0517/workout-tracker/internal/workouts"
)

var ErrInvalidDateRange = errors.New("from_date must not be after to_date")

// WorkoutsRepo provides the workout history (for dependency injection and testing).
type WorkoutsRepo interface {
	GetWorkouts(ctx context.Context) ([]workouts.Workout, error)
}

type summaryService interface {
	GetWeeklySummary(ctx context.Context, startDate string) (*summary.WeeklySummary, error)
	GetMonthlySummary(ctx context.Context, year, month int) (*summary.MonthlySummary, error)
}

type progressAnalyzer interface {
	ExerciseProgress(ctx context.Context, exerciseName string) ([]workouts.ProgressPoint, error)
}

type statsProvider interface {
	GetDataStats(ctx context.Context) (*datasync.DataStats, error)
}

type latestMeasurementRepo interface {
	GetLatest(ctx context.Context) (*health.BodyMeasurement, error)
}

// contextService provides tracker data to the MCP tools.
// Used by Handler for testability.
type contextService interface {
	GetWeeklySummary(ctx context.Context, startDate string) (*summary.WeeklySummary, error)
	GetMonthlySummary(ctx context.Context, year, month int) (*summary.MonthlySummary, error)
	ListWorkouts(ctx context.Context, fromDate, toDate string) ([]workouts.Workout, error)
	GetExerciseProgress(ctx context.Context, exerciseName string) ([]workouts.ProgressPoint, error)
	GetDataStats(ctx context.Context) (*datasync.DataStats, error)
	GetLatestMeasurement(ctx context.Context) (*health.BodyMeasurement, error)
}

// ContextService holds dependencies and implements the tracker context lookups.
type ContextService struct {
	summaries    summaryService
	workouts     WorkoutsRepo
	analyzer     progressAnalyzer
	stats        statsProvider
	measurements latestMeasurementRepo
}

func NewContextService(
	summaries summaryService,
	workoutsRepo WorkoutsRepo,
	analyzer progressAnalyzer,
	stats statsProvider,
	measurements latestMeasurementRepo,
) *ContextService {
	return &ContextService{
		summaries:    summaries,
		workouts:     workoutsRepo,
		analyzer:     analyzer,
		stats:        stats,
		measurements: measurements,
	}
}

func (s *ContextService) GetWeeklySummary(ctx context.Context, startDate string) (*summary.WeeklySummary, error) {
	return s.summaries.GetWeeklySummary(ctx, startDate)
}

func (s *ContextService) GetMonthlySummary(ctx context.Context, year, month int) (*summary.MonthlySummary, error) {
	return s.summaries.GetMonthlySummary(ctx, year, month)
}

// ListWorkouts returns workouts dated within [fromDate, toDate], oldest first.
// Both dates are YYYY-MM-DD; an empty bound is open.
func (s *ContextService) ListWorkouts(ctx context.Context, fromDate, toDate string) ([]workouts.Workout, error) {
	for _, d := range []string{fromDate, toDate} {
		if d != "" && !validation.IsDate(d) {
			return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", d)
		}
	}
	if fromDate != "" && toDate != "" && fromDate > toDate {
		return nil, ErrInvalidDateRange
	}

	all, err := s.workouts.GetWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]workouts.Workout, 0, len(all))
	for _, w := range all {
		if fromDate != "" && w.Date < fromDate {
			continue
		}
		if toDate != "" && w.Date > toDate {
			continue
		}
		list = append(list, w)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date < list[j].Date
	})

	return list, nil
}

func (s *ContextService) GetExerciseProgress(ctx context.Context, exerciseName string) ([]workouts.ProgressPoint, error) {
	return s.analyzer.ExerciseProgress(ctx, exerciseName)
}

func (s *ContextService) GetDataStats(ctx context.Context) (*datasync.DataStats, error) {
	return s.stats.GetDataStats(ctx)
}

func (s *ContextService) GetLatestMeasurement(ctx context.Context) (*health.BodyMeasurement, error) {
	return s.measurements.GetLatest(ctx)
}
