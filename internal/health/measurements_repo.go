package health

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/chihironakai0517/workout-tracker/internal/store"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
)

type MeasurementsRepo struct {
	measurements *store.Collection[BodyMeasurement]
	newID        func() string
}

func NewMeasurementsRepo(kv store.KV) *MeasurementsRepo {
	return &MeasurementsRepo{
		measurements: store.NewCollection[BodyMeasurement](kv, MeasurementsKey),
		newID:        uuid.NewString,
	}
}

// Save stores m under a new id with its BMR computed.
func (r *MeasurementsRepo) Save(ctx context.Context, m BodyMeasurement) (*BodyMeasurement, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.save")
	defer span.End()

	m = m.withBMR()
	m.ID = r.newID()
	r.measurements.Mutate(ctx, func(items []BodyMeasurement) ([]BodyMeasurement, bool) {
		return append(items, m), true
	})
	return &m, nil
}

func (r *MeasurementsRepo) Update(ctx context.Context, m BodyMeasurement) (_ *BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	m = m.withBMR()
	found := false
	r.measurements.Mutate(ctx, func(items []BodyMeasurement) ([]BodyMeasurement, bool) {
		for i := range items {
			if items[i].ID == m.ID {
				items[i] = m
				found = true
			}
		}
		return items, found
	})
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMeasurementNotFound, m.ID)
	}
	return &m, nil
}

func (r *MeasurementsRepo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	found := false
	r.measurements.Mutate(ctx, func(items []BodyMeasurement) ([]BodyMeasurement, bool) {
		before := len(items)
		items = slices.DeleteFunc(items, func(m BodyMeasurement) bool { return m.ID == id })
		found = len(items) != before
		return items, found
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrMeasurementNotFound, id)
	}
	return nil
}

func (r *MeasurementsRepo) GetAll(ctx context.Context) ([]BodyMeasurement, error) {
	return r.measurements.Load(ctx), nil
}

// GetLatest returns the measurement with the most recent date, or nil.
func (r *MeasurementsRepo) GetLatest(ctx context.Context) (*BodyMeasurement, error) {
	all := r.measurements.Load(ctx)
	if len(all) == 0 {
		return nil, nil
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date > all[j].Date
	})
	return &all[0], nil
}

// LatestWeight lets the workout repo estimate calories with the measured body weight.
func (r *MeasurementsRepo) LatestWeight(ctx context.Context) (float64, bool) {
	latest, err := r.GetLatest(ctx)
	if err != nil || latest == nil || latest.Weight <= 0 {
		return 0, false
	}
	return latest.Weight, true
}

// Merge appends measurements with unseen ids and returns how many were added.
func (r *MeasurementsRepo) Merge(ctx context.Context, incoming []BodyMeasurement) int {
	added := 0
	r.measurements.Mutate(ctx, func(items []BodyMeasurement) ([]BodyMeasurement, bool) {
		items, added = mergeByID(items, incoming, func(m BodyMeasurement) string { return m.ID })
		return items, added > 0
	})
	return added
}

func mergeByID[T any](existing, incoming []T, id func(T) string) ([]T, int) {
	seen := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		seen[id(item)] = struct{}{}
	}
	added := 0
	for _, item := range incoming {
		if _, ok := seen[id(item)]; ok {
			continue
		}
		seen[id(item)] = struct{}{}
		existing = append(existing, item)
		added++
	}
	return existing, added
}
