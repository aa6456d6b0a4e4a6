package datasync

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/internal/health"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/metrics"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
	"github.com/chihironakai0517/workout-tracker/internal/validation"
	"github.com/chihironakai0517/workout-tracker/internal/workouts"
)

const FormatVersion = "1.0"

const (
	msgParseFailed     = "Failed to parse JSON data"
	msgInvalidFormat   = "Invalid data format"
	msgInvalidSyncCode = "Invalid sync code"
)

// Document is the full export of the tracker data.
type Document struct {
	Version         string                   `json:"version"`
	ExportDate      string                   `json:"exportDate"`
	Workouts        []workouts.Workout       `json:"workouts"`
	Measurements    []health.BodyMeasurement `json:"measurements,omitempty"`
	Nutrition       []health.DailyNutrition  `json:"nutrition,omitempty"`
	Goals           *health.Goals            `json:"goals,omitempty"`
	CustomExercises workouts.Presets         `json:"customExercises,omitempty"`
	TotalWorkouts   int                      `json:"totalWorkouts"`
}

// importDocument tells a missing workouts list apart from an empty one.
type importDocument struct {
	Version         string                   `json:"version"`
	ExportDate      string                   `json:"exportDate"`
	Workouts        *[]workouts.Workout      `json:"workouts"`
	Measurements    []health.BodyMeasurement `json:"measurements"`
	Nutrition       []health.DailyNutrition  `json:"nutrition"`
	Goals           *health.Goals            `json:"goals"`
	CustomExercises workouts.Presets         `json:"customExercises"`
}

// syncCodePayload is the compact form carried by sync codes.
type syncCodePayload struct {
	V string             `json:"v"`
	D string             `json:"d"`
	W []workouts.Workout `json:"w"`
}

type ImportResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ImportedCount int    `json:"importedCount"`
}

type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

type DataStats struct {
	TotalWorkouts  int        `json:"totalWorkouts"`
	TotalExercises int        `json:"totalExercises"`
	TotalCalories  float64    `json:"totalCalories"`
	DateRange      *DateRange `json:"dateRange"`
	DataSize       int        `json:"dataSize"`
}

type workoutsStore interface {
	GetWorkouts(ctx context.Context) ([]workouts.Workout, error)
	Merge(ctx context.Context, incoming []workouts.Workout) int
}

type presetsStore interface {
	GetExercisePresets(ctx context.Context) workouts.Presets
	ReplacePresets(ctx context.Context, presets workouts.Presets)
}

type measurementsStore interface {
	GetAll(ctx context.Context) ([]health.BodyMeasurement, error)
	Merge(ctx context.Context, incoming []health.BodyMeasurement) int
}

type nutritionStore interface {
	GetAllDailyNutrition(ctx context.Context) ([]health.DailyNutrition, error)
	Merge(ctx context.Context, incoming []health.DailyNutrition) int
}

type goalsStore interface {
	GetGoals(ctx context.Context) (*health.Goals, error)
	ReplaceGoals(ctx context.Context, g health.Goals)
}

type Service struct {
	workouts       workoutsStore
	presets        presetsStore
	measurements   measurementsStore
	nutrition      nutritionStore
	goals          goalsStore
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	workouts workoutsStore,
	presets presetsStore,
	measurements measurementsStore,
	nutrition nutritionStore,
	goals goalsStore,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		workouts:       workouts,
		presets:        presets,
		measurements:   measurements,
		nutrition:      nutrition,
		goals:          goals,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) document(ctx context.Context) (*Document, error) {
	ws, err := s.workouts.GetWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get workouts: %w", err)
	}
	measurements, err := s.measurements.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get measurements: %w", err)
	}
	nutrition, err := s.nutrition.GetAllDailyNutrition(ctx)
	if err != nil {
		return nil, fmt.Errorf("get nutrition: %w", err)
	}
	goals, err := s.goals.GetGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}

	return &Document{
		Version:         FormatVersion,
		ExportDate:      s.now().UTC().Format(time.RFC3339),
		Workouts:        ws,
		Measurements:    measurements,
		Nutrition:       nutrition,
		Goals:           goals,
		CustomExercises: s.presets.GetExercisePresets(ctx),
		TotalWorkouts:   len(ws),
	}, nil
}

// Export renders all tracker data as an indented JSON document.
func (s *Service) Export(ctx context.Context) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "datasync.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}
	return sonic.ConfigDefault.MarshalIndent(doc, "", "  ")
}

// ExportFileName is the download name for an export taken at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("workout-data-%s.json", now.UTC().Format(validation.DateLayout))
}

// Import merges an export document into the stored data.
// Records are matched by id, nutrition days by date, so importing the same document twice adds nothing the second time.
func (s *Service) Import(ctx context.Context, data []byte) ImportResult {
	ctx, span := tracing.GlobalTracer.Start(ctx, "datasync.import")
	defer span.End()

	var doc importDocument
	if err := sonic.ConfigDefault.Unmarshal(data, &doc); err != nil {
		log.Debugf("import: parse document: %s", err)
		return ImportResult{Message: msgParseFailed}
	}
	if doc.Version == "" || doc.Workouts == nil {
		return ImportResult{Message: msgInvalidFormat}
	}

	importedWorkouts := s.workouts.Merge(ctx, *doc.Workouts)
	importedMeasurements := s.measurements.Merge(ctx, doc.Measurements)
	importedNutrition := s.nutrition.Merge(ctx, doc.Nutrition)
	if doc.Goals != nil {
		s.goals.ReplaceGoals(ctx, *doc.Goals)
	}
	if len(doc.CustomExercises) > 0 {
		s.presets.ReplacePresets(ctx, mergePresets(s.presets.GetExercisePresets(ctx), doc.CustomExercises))
	}

	s.metricsManager.CounterImportedRecords.WithLabelValues("workouts").Add(float64(importedWorkouts))
	s.metricsManager.CounterImportedRecords.WithLabelValues("measurements").Add(float64(importedMeasurements))
	s.metricsManager.CounterImportedRecords.WithLabelValues("nutrition").Add(float64(importedNutrition))

	log.Infof(
		"import [%s]: %d workouts, %d measurements, %d nutrition days added",
		doc.ExportDate, importedWorkouts, importedMeasurements, importedNutrition,
	)

	return ImportResult{
		Success:       true,
		Message:       fmt.Sprintf("Successfully imported %d new workouts", importedWorkouts),
		ImportedCount: importedWorkouts,
	}
}

// mergePresets adds the incoming exercise names missing from current, group by group.
func mergePresets(current, incoming workouts.Presets) workouts.Presets {
	merged := make(workouts.Presets, len(current))
	for group, names := range current {
		merged[group] = slices.Clone(names)
	}
	for group, names := range incoming {
		for _, name := range names {
			if !slices.Contains(merged[group], name) {
				merged[group] = append(merged[group], name)
			}
		}
	}
	return merged
}

// GenerateSyncCode packs the workout history into a base64 string.
func (s *Service) GenerateSyncCode(ctx context.Context) (string, error) {
	ws, err := s.workouts.GetWorkouts(ctx)
	if err != nil {
		return "", fmt.Errorf("get workouts: %w", err)
	}

	payload, err := sonic.ConfigDefault.Marshal(syncCodePayload{
		V: FormatVersion,
		D: s.now().UTC().Format(validation.DateLayout),
		W: ws,
	})
	if err != nil {
		return "", fmt.Errorf("marshal sync payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

func (s *Service) ImportFromSyncCode(ctx context.Context, code string) ImportResult {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return ImportResult{Message: msgInvalidSyncCode}
	}

	var payload syncCodePayload
	if err := sonic.ConfigDefault.Unmarshal(raw, &payload); err != nil {
		return ImportResult{Message: msgInvalidSyncCode}
	}
	if payload.W == nil {
		payload.W = []workouts.Workout{}
	}

	doc, err := sonic.ConfigDefault.Marshal(Document{
		Version:    payload.V,
		ExportDate: payload.D,
		Workouts:   payload.W,
	})
	if err != nil {
		return ImportResult{Message: msgInvalidSyncCode}
	}
	return s.Import(ctx, doc)
}

// GenerateShareableLink points origin's sync page at the current sync code.
func (s *Service) GenerateShareableLink(ctx context.Context, origin string) (string, error) {
	code, err := s.GenerateSyncCode(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/sync?code=%s", strings.TrimSuffix(origin, "/"), url.QueryEscape(code)), nil
}

func (s *Service) GetDataStats(ctx context.Context) (*DataStats, error) {
	ws, err := s.workouts.GetWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get workouts: %w", err)
	}

	stats := DataStats{TotalWorkouts: len(ws)}
	for _, w := range ws {
		stats.TotalExercises += w.ExerciseCount()
		stats.TotalCalories += w.TotalCalories

		if stats.DateRange == nil {
			stats.DateRange = &DateRange{Earliest: w.Date, Latest: w.Date}
			continue
		}
		if w.Date < stats.DateRange.Earliest {
			stats.DateRange.Earliest = w.Date
		}
		if w.Date > stats.DateRange.Latest {
			stats.DateRange.Latest = w.Date
		}
	}

	history, err := sonic.ConfigDefault.Marshal(ws)
	if err != nil {
		return nil, fmt.Errorf("marshal workouts: %w", err)
	}
	stats.DataSize = len(history)

	return &stats, nil
}
