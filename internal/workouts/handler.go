package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/internal/telemetry/metrics"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
	"github.com/chihironakai0517/workout-tracker/internal/validation"
	"github.com/chihironakai0517/workout-tracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	SaveWorkout(ctx context.Context, workout Workout) (*Workout, error)
	GetWorkouts(ctx context.Context) ([]Workout, error)
	GetWorkoutByID(ctx context.Context, id string) (*Workout, error)
	GetWorkoutSummaries(ctx context.Context) ([]WorkoutSummary, error)
	GetLastWorkout(ctx context.Context) (*Workout, error)
	DeleteWorkout(ctx context.Context, id string) error
	BodyWeight(ctx context.Context) float64
}

type presetsRepo interface {
	GetExercisePresets(ctx context.Context) Presets
	AddCustomExercise(ctx context.Context, group, name string) (Presets, error)
	RemoveCustomExercise(ctx context.Context, group, name string) (Presets, error)
	ResetToDefaultPresets(ctx context.Context) Presets
}

type DeleteWorkoutResponse struct {
	DeletedID string `json:"deletedId"`
}

type PresetRequest struct {
	Name string `json:"name"`
}

type CaloriesRequest struct {
	Name     string  `json:"name" validate:"required"`
	Duration float64 `json:"duration" validate:"gt=0"`
	Distance float64 `json:"distance" validate:"gte=0"`
	// Weight in kg; zero means the latest measured weight.
	Weight float64 `json:"weight" validate:"gte=0"`
}

type CaloriesResponse struct {
	Activity string  `json:"activity"`
	SpeedKmH float64 `json:"speedKmh"`
	METs     float64 `json:"mets"`
	Weight   float64 `json:"weight"`
	Calories float64 `json:"calories"`
}

type Handler struct {
	repo           workoutsRepo
	presets        presetsRepo
	analyzer       *Analyzer
	metricsManager *metrics.Manager
}

func NewHandler(repo workoutsRepo, presets presetsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		presets:        presets,
		analyzer:       NewAnalyzer(repo),
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("save workout, unmarshal json params: %s", err)
		http.Error(w, "save workout failed", http.StatusBadRequest)
		return
	}

	if err := validation.Struct(workout); err != nil {
		http.Error(w, "invalid workout: "+err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := handler.repo.SaveWorkout(ctx, workout)
	if err != nil {
		log.Errorf("failed to save workout for %s: %s", workout.Date, err)
		http.Error(w, "error, failed to save workout", http.StatusInternalServerError)
		return
	}
	handler.metricsManager.CounterWorkoutsSaved.Inc()

	pkg.WriteJSON(w, saved, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	workouts, err := handler.repo.GetWorkouts(ctx)
	if err != nil {
		log.Errorf("failed to list workouts: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, workouts, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.GetWorkoutByID(ctx, id)
	if errors.Is(err, ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get workout %s: %s", id, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, workout, http.StatusOK)
}

// HandleLast writes the last saved workout, or null when there is none.
func (handler *Handler) HandleLast(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.last")
	defer span.End()

	workout, err := handler.repo.GetLastWorkout(ctx)
	if err != nil {
		log.Errorf("failed to get last workout: %s", err)
		http.Error(w, "failed to get last workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleSummaries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.summaries")
	defer span.End()

	summaries, err := handler.repo.GetWorkoutSummaries(ctx)
	if err != nil {
		log.Errorf("failed to get workout summaries: %s", err)
		http.Error(w, "failed to get workout summaries", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, summaries, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeleteWorkout(ctx, id); errors.Is(err, ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete workout %s: %s", id, err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DeleteWorkoutResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.progress")
	defer span.End()

	name := strings.TrimSpace(mux.Vars(r)["name"])
	if name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	progress, err := handler.analyzer.ExerciseProgress(ctx, name)
	if err != nil {
		log.Errorf("failed to get progress for [%s]: %s", name, err)
		http.Error(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, progress, http.StatusOK)
}

func (handler *Handler) HandleCalculateCalories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.calories")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CaloriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid calories request", http.StatusBadRequest)
		return
	}
	if err := validation.Struct(req); err != nil {
		http.Error(w, "invalid calories request: "+err.Error(), http.StatusBadRequest)
		return
	}

	kind, ok := ParseCardioKind(req.Name)
	if !ok {
		http.Error(w, "unknown cardio activity", http.StatusBadRequest)
		return
	}

	weight := req.Weight
	if weight <= 0 {
		weight = handler.repo.BodyWeight(ctx)
	}
	speed := req.Distance / (req.Duration / 60)

	pkg.WriteJSON(w, CaloriesResponse{
		Activity: string(kind),
		SpeedKmH: speed,
		METs:     METs(kind, speed),
		Weight:   weight,
		Calories: CalculateCardioCalories(kind, req.Duration, req.Distance, weight),
	}, http.StatusOK)
}

func (handler *Handler) HandleGetPresets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.presets.get")
	defer span.End()

	pkg.WriteJSON(w, handler.presets.GetExercisePresets(ctx), http.StatusOK)
}

func (handler *Handler) HandleAddPreset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.presets.add")
	defer span.End()

	group, req, ok := presetRequest(w, r)
	if !ok {
		return
	}

	presets, err := handler.presets.AddCustomExercise(ctx, group, req.Name)
	if err != nil {
		writePresetError(w, group, err)
		return
	}
	pkg.WriteJSON(w, presets, http.StatusOK)
}

func (handler *Handler) HandleRemovePreset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.presets.remove")
	defer span.End()

	group, req, ok := presetRequest(w, r)
	if !ok {
		return
	}

	presets, err := handler.presets.RemoveCustomExercise(ctx, group, req.Name)
	if err != nil {
		writePresetError(w, group, err)
		return
	}
	pkg.WriteJSON(w, presets, http.StatusOK)
}

func (handler *Handler) HandleResetPresets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.presets.reset")
	defer span.End()

	log.Debugln("resetting exercise presets to defaults")
	pkg.WriteJSON(w, handler.presets.ResetToDefaultPresets(ctx), http.StatusOK)
}

func presetRequest(w http.ResponseWriter, r *http.Request) (string, PresetRequest, bool) {
	var req PresetRequest

	group := mux.Vars(r)["group"]
	if group == "" {
		http.Error(w, "error, muscle group empty", http.StatusBadRequest)
		return "", req, false
	}
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return "", req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid preset request", http.StatusBadRequest)
		return "", req, false
	}
	return group, req, true
}

func writePresetError(w http.ResponseWriter, group string, err error) {
	switch {
	case errors.Is(err, ErrUnknownMuscleGroup):
		http.Error(w, "unknown muscle group", http.StatusNotFound)
	case errors.Is(err, ErrEmptyExerciseName):
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
	default:
		log.Errorf("failed to update presets for [%s]: %s", group, err)
		http.Error(w, "failed to update presets", http.StatusInternalServerError)
	}
}
