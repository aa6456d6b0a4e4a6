package health

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/chihironakai0517/workout-tracker/internal/store"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
)

var ErrMealNotFound = errors.New("meal not found")

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

type Meal struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	MealType MealType `json:"mealType" validate:"oneof=Breakfast Lunch Dinner Snack"`
	Name     string   `json:"name"`
	Calories float64  `json:"calories" validate:"gte=0"`
	Protein  float64  `json:"protein" validate:"gte=0"`
	Carbs    float64  `json:"carbs" validate:"gte=0"`
	Fat      float64  `json:"fat" validate:"gte=0"`
	Time     string   `json:"time" validate:"omitempty,clock"`
}

type DailyNutrition struct {
	ID            string  `json:"id"`
	Date          string  `json:"date" validate:"required,date"`
	Meals         []Meal  `json:"meals" validate:"dive"`
	TotalCalories float64 `json:"totalCalories" validate:"gte=0"`
	TotalProtein  float64 `json:"totalProtein" validate:"gte=0"`
	TotalCarbs    float64 `json:"totalCarbs" validate:"gte=0"`
	TotalFat      float64 `json:"totalFat" validate:"gte=0"`
	WaterIntake   float64 `json:"waterIntake" validate:"gte=0"`
}

// HasContent reports whether anything was recorded for the day.
func (d DailyNutrition) HasContent() bool {
	return d.TotalCalories > 0 || d.WaterIntake > 0 || len(d.Meals) > 0
}

// MacroCalories = protein*4 + carbs*4 + fat*9.
func MacroCalories(protein, carbs, fat float64) float64 {
	return protein*4 + carbs*4 + fat*9
}

func (m Meal) normalized() Meal {
	if m.Calories == 0 {
		m.Calories = MacroCalories(m.Protein, m.Carbs, m.Fat)
	}
	if m.Name == "" {
		m.Name = string(m.MealType)
	}
	return m
}

func (d *DailyNutrition) recomputeTotals() {
	d.TotalCalories, d.TotalProtein, d.TotalCarbs, d.TotalFat = 0, 0, 0, 0
	for _, m := range d.Meals {
		d.TotalCalories += m.Calories
		d.TotalProtein += m.Protein
		d.TotalCarbs += m.Carbs
		d.TotalFat += m.Fat
	}
}

type NutritionRepo struct {
	days  *store.Collection[DailyNutrition]
	newID func() string
}

func NewNutritionRepo(kv store.KV) *NutritionRepo {
	return &NutritionRepo{
		days:  store.NewCollection[DailyNutrition](kv, NutritionKey),
		newID: uuid.NewString,
	}
}

func (r *NutritionRepo) emptyDay(date string) DailyNutrition {
	return DailyNutrition{
		ID:    r.newID(),
		Date:  date,
		Meals: []Meal{},
	}
}

func findDay(days []DailyNutrition, date string) (DailyNutrition, bool) {
	for _, d := range days {
		if d.Date == date {
			return d, true
		}
	}
	return DailyNutrition{}, false
}

// replaceDay drops any record for day.Date and appends day.
func replaceDay(days []DailyNutrition, day DailyNutrition) []DailyNutrition {
	days = slices.DeleteFunc(days, func(d DailyNutrition) bool { return d.Date == day.Date })
	return append(days, day)
}

func (r *NutritionRepo) GetAllDailyNutrition(ctx context.Context) ([]DailyNutrition, error) {
	return r.days.Load(ctx), nil
}

// GetDailyNutrition returns the stored day, or an unsaved empty one.
func (r *NutritionRepo) GetDailyNutrition(ctx context.Context, date string) (*DailyNutrition, error) {
	day, ok := findDay(r.days.Load(ctx), date)
	if !ok {
		day = r.emptyDay(date)
	}
	return &day, nil
}

// SaveDailyNutrition replaces the record for n.Date, keeping the stored id when there is one.
func (r *NutritionRepo) SaveDailyNutrition(ctx context.Context, n DailyNutrition) (*DailyNutrition, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.save")
	defer span.End()
	span.SetAttributes(attribute.String("nutrition.date", n.Date))

	if n.Meals == nil {
		n.Meals = []Meal{}
	}
	r.days.Mutate(ctx, func(days []DailyNutrition) ([]DailyNutrition, bool) {
		if existing, ok := findDay(days, n.Date); ok {
			n.ID = existing.ID
		} else {
			n.ID = r.newID()
		}
		return replaceDay(days, n), true
	})
	return &n, nil
}

// AddMeal appends the meal to its day and adds its values to the day totals.
func (r *NutritionRepo) AddMeal(ctx context.Context, meal Meal) (*DailyNutrition, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.add-meal")
	defer span.End()

	meal = meal.normalized()
	meal.ID = r.newID()

	var day DailyNutrition
	r.days.Mutate(ctx, func(days []DailyNutrition) ([]DailyNutrition, bool) {
		var ok bool
		if day, ok = findDay(days, meal.Date); !ok {
			day = r.emptyDay(meal.Date)
		}
		day.Meals = append(slices.Clone(day.Meals), meal)
		day.TotalCalories += meal.Calories
		day.TotalProtein += meal.Protein
		day.TotalCarbs += meal.Carbs
		day.TotalFat += meal.Fat
		return replaceDay(days, day), true
	})
	return &day, nil
}

// UpdateMeal replaces a meal by id and recomputes the day totals from its meals.
func (r *NutritionRepo) UpdateMeal(ctx context.Context, date string, meal Meal) (_ *DailyNutrition, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.update-meal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	meal = meal.normalized()
	meal.Date = date
	return r.mutateMeals(ctx, date, meal.ID, func(meals []Meal, idx int) []Meal {
		meals[idx] = meal
		return meals
	})
}

// DeleteMeal removes a meal by id and recomputes the day totals from the remaining meals.
func (r *NutritionRepo) DeleteMeal(ctx context.Context, date, mealID string) (_ *DailyNutrition, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.delete-meal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.mutateMeals(ctx, date, mealID, func(meals []Meal, idx int) []Meal {
		return slices.Delete(meals, idx, idx+1)
	})
}

func (r *NutritionRepo) mutateMeals(
	ctx context.Context,
	date, mealID string,
	apply func(meals []Meal, idx int) []Meal,
) (*DailyNutrition, error) {
	var (
		day   DailyNutrition
		found bool
	)
	r.days.Mutate(ctx, func(days []DailyNutrition) ([]DailyNutrition, bool) {
		var ok bool
		if day, ok = findDay(days, date); !ok {
			return days, false
		}
		idx := slices.IndexFunc(day.Meals, func(m Meal) bool { return m.ID == mealID })
		if idx < 0 {
			return days, false
		}
		found = true
		day.Meals = apply(slices.Clone(day.Meals), idx)
		day.recomputeTotals()
		return replaceDay(days, day), true
	})
	if !found {
		return nil, fmt.Errorf("%w: %s on %s", ErrMealNotFound, mealID, date)
	}
	return &day, nil
}

// UpdateWaterIntake sets the water value (ml) for the day, creating the day when absent.
func (r *NutritionRepo) UpdateWaterIntake(ctx context.Context, date string, ml float64) (*DailyNutrition, error) {
	var day DailyNutrition
	r.days.Mutate(ctx, func(days []DailyNutrition) ([]DailyNutrition, bool) {
		var ok bool
		if day, ok = findDay(days, date); !ok {
			day = r.emptyDay(date)
		}
		day.WaterIntake = ml
		return replaceDay(days, day), true
	})
	return &day, nil
}

// Merge imports days keeping one record per date. A day with an unseen date is appended.
// A day whose date is already stored has its unseen meals folded into the stored record,
// which keeps its id, and totals are recomputed. Returns how many days were added or changed.
func (r *NutritionRepo) Merge(ctx context.Context, incoming []DailyNutrition) int {
	changed := 0
	r.days.Mutate(ctx, func(items []DailyNutrition) ([]DailyNutrition, bool) {
		changed = 0
		knownIDs := make(map[string]struct{}, len(items))
		for _, d := range items {
			knownIDs[d.ID] = struct{}{}
		}
		for _, in := range incoming {
			if in.Date == "" {
				continue
			}
			idx := slices.IndexFunc(items, func(d DailyNutrition) bool { return d.Date == in.Date })
			if idx < 0 {
				if _, ok := knownIDs[in.ID]; ok || in.ID == "" {
					in.ID = r.newID()
				}
				if in.Meals == nil {
					in.Meals = []Meal{}
				}
				knownIDs[in.ID] = struct{}{}
				items = append(items, in)
				changed++
				continue
			}
			if foldDay(&items[idx], in) {
				changed++
			}
		}
		return items, changed > 0
	})
	return changed
}

// foldDay adds the meals of in that day does not have yet. Water is taken from in only
// when day has none recorded.
func foldDay(day *DailyNutrition, in DailyNutrition) bool {
	meals := slices.Clone(day.Meals)
	folded := false
	for _, m := range in.Meals {
		if m.ID != "" && slices.ContainsFunc(meals, func(existing Meal) bool { return existing.ID == m.ID }) {
			continue
		}
		m.Date = day.Date
		meals = append(meals, m)
		folded = true
	}
	if day.WaterIntake == 0 && in.WaterIntake > 0 {
		day.WaterIntake = in.WaterIntake
		folded = true
	}
	if !folded {
		return false
	}
	if meals == nil {
		meals = []Meal{}
	}
	day.Meals = meals
	day.recomputeTotals()
	return true
}
