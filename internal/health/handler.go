package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/internal/telemetry/metrics"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
	"github.com/chihironakai0517/workout-tracker/internal/validation"
	"github.com/chihironakai0517/workout-tracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=health_mocks_test.go -package=health_test

type measurementsRepo interface {
	Save(ctx context.Context, m BodyMeasurement) (*BodyMeasurement, error)
	Update(ctx context.Context, m BodyMeasurement) (*BodyMeasurement, error)
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]BodyMeasurement, error)
	GetLatest(ctx context.Context) (*BodyMeasurement, error)
	LatestWeight(ctx context.Context) (float64, bool)
}

type nutritionRepo interface {
	GetAllDailyNutrition(ctx context.Context) ([]DailyNutrition, error)
	GetDailyNutrition(ctx context.Context, date string) (*DailyNutrition, error)
	SaveDailyNutrition(ctx context.Context, n DailyNutrition) (*DailyNutrition, error)
	AddMeal(ctx context.Context, meal Meal) (*DailyNutrition, error)
	UpdateMeal(ctx context.Context, date string, meal Meal) (*DailyNutrition, error)
	DeleteMeal(ctx context.Context, date, mealID string) (*DailyNutrition, error)
	UpdateWaterIntake(ctx context.Context, date string, ml float64) (*DailyNutrition, error)
}

type goalsRepo interface {
	GetGoals(ctx context.Context) (*Goals, error)
	SaveGoals(ctx context.Context, g Goals) (*Goals, error)
	ClearGoals(ctx context.Context) error
}

type LatestMeasurementResponse struct {
	BodyMeasurement
	TDEE        *float64 `json:"tdee,omitempty"`
	BMI         *float64 `json:"bmi,omitempty"`
	BMICategory string   `json:"bmiCategory,omitempty"`
}

type BMRRequest struct {
	Weight        float64       `json:"weight" validate:"gt=0"`
	Height        float64       `json:"height" validate:"gt=0"`
	Age           int           `json:"age" validate:"gt=0"`
	Gender        Gender        `json:"gender" validate:"oneof=male female"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
}

type BMRResponse struct {
	BMR           float64       `json:"bmr"`
	TDEE          float64       `json:"tdee"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	ActivityLabel string        `json:"activityLabel"`
	BMI           *float64      `json:"bmi,omitempty"`
	BMICategory   string        `json:"bmiCategory,omitempty"`
}

type WaterRequest struct {
	WaterIntake float64 `json:"waterIntake" validate:"gte=0"`
}

type PFCRequest struct {
	Calories float64 `json:"calories" validate:"gt=0"`
	// Weight in kg; zero means the latest measured weight.
	Weight float64 `json:"weight" validate:"gte=0"`
}

type DeletedResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	measurements   measurementsRepo
	nutrition      nutritionRepo
	goals          goalsRepo
	metricsManager *metrics.Manager
}

func NewHandler(
	measurements measurementsRepo,
	nutrition nutritionRepo,
	goals goalsRepo,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		measurements:   measurements,
		nutrition:      nutrition,
		goals:          goals,
		metricsManager: metricsManager,
	}
}

// decodeJSON checks the content type, decodes the body into v and validates it.
// It writes the error response itself and reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := validation.Struct(v); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func dateVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := mux.Vars(r)["date"]
	if !validation.IsDate(date) {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return "", false
	}
	return date, true
}

func (handler *Handler) HandleListMeasurements(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.measurements.list")
	defer span.End()

	measurements, err := handler.measurements.GetAll(ctx)
	if err != nil {
		log.Errorf("failed to list measurements: %s", err)
		http.Error(w, "failed to get measurements", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, measurements, http.StatusOK)
}

func (handler *Handler) HandleSaveMeasurement(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.measurements.save")
	defer span.End()

	var m BodyMeasurement
	if !decodeJSON(w, r, &m) {
		return
	}

	saved, err := handler.measurements.Save(ctx, m)
	if err != nil {
		log.Errorf("failed to save measurement for %s: %s", m.Date, err)
		http.Error(w, "failed to save measurement", http.StatusInternalServerError)
		return
	}
	handler.metricsManager.CounterMeasurementsSaved.Inc()

	pkg.WriteJSON(w, saved, http.StatusCreated)
}

// HandleLatestMeasurement writes the latest measurement with its TDEE and BMI, or null.
func (handler *Handler) HandleLatestMeasurement(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.measurements.latest")
	defer span.End()

	latest, err := handler.measurements.GetLatest(ctx)
	if err != nil {
		log.Errorf("failed to get latest measurement: %s", err)
		http.Error(w, "failed to get latest measurement", http.StatusInternalServerError)
		return
	}
	if latest == nil {
		pkg.WriteJSON(w, nil, http.StatusOK)
		return
	}

	resp := LatestMeasurementResponse{BodyMeasurement: *latest}
	if latest.BMR != nil {
		tdee := CalculateTDEE(*latest.BMR, latest.ActivityLevel)
		resp.TDEE = &tdee
	}
	if bmi, err := CalculateBMI(latest.Height, latest.Weight); err == nil {
		resp.BMI = &bmi
		resp.BMICategory = BMICategory(bmi)
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) HandleUpdateMeasurement(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.measurements.update")
	defer span.End()

	var m BodyMeasurement
	if !decodeJSON(w, r, &m) {
		return
	}
	m.ID = mux.Vars(r)["id"]

	updated, err := handler.measurements.Update(ctx, m)
	if errors.Is(err, ErrMeasurementNotFound) {
		http.Error(w, "measurement not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to update measurement %s: %s", m.ID, err)
		http.Error(w, "failed to update measurement", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDeleteMeasurement(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.measurements.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if err := handler.measurements.Delete(ctx, id); errors.Is(err, ErrMeasurementNotFound) {
		http.Error(w, "measurement not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete measurement %s: %s", id, err)
		http.Error(w, "failed to delete measurement", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, DeletedResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleCalculateBMR(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.bmr")
	defer span.End()

	var req BMRRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	level := req.ActivityLevel.Normalize()
	bmr := CalculateBMR(req.Weight, req.Height, req.Age, req.Gender)
	resp := BMRResponse{
		BMR:           bmr,
		TDEE:          CalculateTDEE(bmr, level),
		ActivityLevel: level,
		ActivityLabel: level.Label(),
	}
	if bmi, err := CalculateBMI(req.Height, req.Weight); err == nil {
		resp.BMI = &bmi
		resp.BMICategory = BMICategory(bmi)
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) HandleListNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.nutrition.list")
	defer span.End()

	days, err := handler.nutrition.GetAllDailyNutrition(ctx)
	if err != nil {
		log.Errorf("failed to list nutrition: %s", err)
		http.Error(w, "failed to get nutrition", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, days, http.StatusOK)
}

func (handler *Handler) HandleGetNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.nutrition.get")
	defer span.End()

	date, ok := dateVar(w, r)
	if !ok {
		return
	}

	day, err := handler.nutrition.GetDailyNutrition(ctx, date)
	if err != nil {
		log.Errorf("failed to get nutrition for %s: %s", date, err)
		http.Error(w, "failed to get nutrition", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, day, http.StatusOK)
}

func (handler *Handler) HandleSaveNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.nutrition.save")
	defer span.End()

	date, ok := dateVar(w, r)
	if !ok {
		return
	}
	// the date comes from the path, the body may omit it
	day := DailyNutrition{Date: date}
	if !decodeJSON(w, r, &day) {
		return
	}
	day.Date = date
	for i := range day.Meals {
		day.Meals[i].Date = date
	}

	saved, err := handler.nutrition.SaveDailyNutrition(ctx, day)
	if err != nil {
		log.Errorf("failed to save nutrition for %s: %s", date, err)
		http.Error(w, "failed to save nutrition", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusOK)
}

func (handler *Handler) HandleAddMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.meals.add")
	defer span.End()

	date, ok := dateVar(w, r)
	if !ok {
		return
	}
	var meal Meal
	if !decodeJSON(w, r, &meal) {
		return
	}
	meal.Date = date

	day, err := handler.nutrition.AddMeal(ctx, meal)
	if err != nil {
		log.Errorf("failed to add meal on %s: %s", date, err)
		http.Error(w, "failed to add meal", http.StatusInternalServerError)
		return
	}
	handler.metricsManager.CounterMealsAdded.Inc()

	pkg.WriteJSON(w, day, http.StatusCreated)
}

func (handler *Handler) HandleUpdateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.meals.update")
	defer span.End()

	date, ok := dateVar(w, r)
	if !ok {
		return
	}
	var meal Meal
	if !decodeJSON(w, r, &meal) {
		return
	}
	meal.ID = mux.Vars(r)["id"]

	day, err := handler.nutrition.UpdateMeal(ctx, date, meal)
	if errors.Is(err, ErrMealNotFound) {
		http.Error(w, "meal not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to update meal %s on %s: %s", meal.ID, date, err)
		http.Error(w, "failed to update meal", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, day, http.StatusOK)
}

func (handler *Handler) HandleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.meals.delete")
	defer span.End()

	date, ok := dateVar(w, r)
	if !ok {
		return
	}
	mealID := mux.Vars(r)["id"]

	day, err := handler.nutrition.DeleteMeal(ctx, date, mealID)
	if errors.Is(err, ErrMealNotFound) {
		http.Error(w, "meal not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete meal %s on %s: %s", mealID, date, err)
		http.Error(w, "failed to delete meal", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, day, http.StatusOK)
}

func (handler *Handler) HandleUpdateWater(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.water")
	defer span.End()

	date, ok := dateVar(w, r)
	if !ok {
		return
	}
	var req WaterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	day, err := handler.nutrition.UpdateWaterIntake(ctx, date, req.WaterIntake)
	if err != nil {
		log.Errorf("failed to update water intake on %s: %s", date, err)
		http.Error(w, "failed to update water intake", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, day, http.StatusOK)
}

func (handler *Handler) HandleGetGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.goals.get")
	defer span.End()

	goals, err := handler.goals.GetGoals(ctx)
	if err != nil {
		log.Errorf("failed to get goals: %s", err)
		http.Error(w, "failed to get goals", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, goals, http.StatusOK)
}

func (handler *Handler) HandleSaveGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.goals.save")
	defer span.End()

	var goals Goals
	if !decodeJSON(w, r, &goals) {
		return
	}

	saved, err := handler.goals.SaveGoals(ctx, goals)
	if err != nil {
		log.Errorf("failed to save goals: %s", err)
		http.Error(w, "failed to save goals", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusOK)
}

func (handler *Handler) HandleClearGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.goals.clear")
	defer span.End()

	if err := handler.goals.ClearGoals(ctx); err != nil {
		log.Errorf("failed to clear goals: %s", err)
		http.Error(w, "failed to clear goals", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleCalculatePFC(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.goals.pfc")
	defer span.End()

	var req PFCRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	weight := req.Weight
	if weight <= 0 {
		latest, ok := handler.measurements.LatestWeight(ctx)
		if !ok {
			http.Error(w, "no body weight measured yet, set weight first", http.StatusBadRequest)
			return
		}
		weight = latest
	}

	pkg.WriteJSON(w, CalculatePFC(req.Calories, weight), http.StatusOK)
}
