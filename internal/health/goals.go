package health

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/chihironakai0517/workout-tracker/internal/store"
)

type Goals struct {
	ID               string   `json:"id"`
	CurrentWeight    *float64 `json:"currentWeight,omitempty" validate:"omitempty,gt=0"`
	TargetWeight     *float64 `json:"targetWeight,omitempty" validate:"omitempty,gt=0"`
	TargetBodyFat    *float64 `json:"targetBodyFat,omitempty" validate:"omitempty,gte=0,lte=100"`
	DailyCalories    *float64 `json:"dailyCalories,omitempty" validate:"omitempty,gte=0"`
	DailyProtein     *float64 `json:"dailyProtein,omitempty" validate:"omitempty,gte=0"`
	DailyCarbs       *float64 `json:"dailyCarbs,omitempty" validate:"omitempty,gte=0"`
	DailyFat         *float64 `json:"dailyFat,omitempty" validate:"omitempty,gte=0"`
	DailyWaterIntake *float64 `json:"dailyWaterIntake,omitempty" validate:"omitempty,gte=0"`
	Notes            string   `json:"notes,omitempty"`
}

type PFC struct {
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Carbs   float64 `json:"carbs"`
}

// CalculatePFC splits a calorie budget into grams:
// 2 g protein per kg of body weight, 20% of calories from fat, carbs take the rest.
func CalculatePFC(calories, weightKg float64) PFC {
	protein := math.Round(weightKg * 2)
	fatCalories := calories * 0.2
	carbs := math.Round((calories - protein*4 - fatCalories) / 4)
	return PFC{
		Protein: protein,
		Fat:     math.Round(fatCalories / 9),
		Carbs:   math.Max(0, carbs),
	}
}

type GoalsRepo struct {
	doc   *store.Singleton[Goals]
	newID func() string
}

func NewGoalsRepo(kv store.KV) *GoalsRepo {
	return &GoalsRepo{
		doc:   store.NewSingleton[Goals](kv, GoalsKey),
		newID: uuid.NewString,
	}
}

// GetGoals returns nil when no goals are set.
func (r *GoalsRepo) GetGoals(ctx context.Context) (*Goals, error) {
	return r.doc.Load(ctx), nil
}

// SaveGoals overwrites the goals, assigning a fresh id.
func (r *GoalsRepo) SaveGoals(ctx context.Context, g Goals) (*Goals, error) {
	g.ID = r.newID()
	r.doc.Save(ctx, &g)
	return &g, nil
}

// ReplaceGoals stores imported goals keeping their id.
func (r *GoalsRepo) ReplaceGoals(ctx context.Context, g Goals) {
	r.doc.Save(ctx, &g)
}

func (r *GoalsRepo) ClearGoals(ctx context.Context) error {
	r.doc.Clear(ctx)
	return nil
}
