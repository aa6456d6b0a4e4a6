package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chihironakai0517/workout-tracker/internal/workouts"
)

// fakeWorkoutsRepo implements WorkoutsRepo for service tests.
type fakeWorkoutsRepo struct {
	list []workouts.Workout
	err  error
}

func (f *fakeWorkoutsRepo) GetWorkouts(_ context.Context) ([]workouts.Workout, error) {
	return f.list, f.err
}

func TestContextService_ListWorkouts(t *testing.T) {
	repo := &fakeWorkoutsRepo{list: []workouts.Workout{
		{ID: "c", Date: "2025-02-03"},
		{ID: "a", Date: "2025-01-05"},
		{ID: "b", Date: "2025-01-20"},
		{ID: "d", Date: "2025-01-20"},
	}}
	svc := NewContextService(nil, repo, nil, nil, nil)
	ctx := context.Background()

	ids := func(list []workouts.Workout) []string {
		out := make([]string, 0, len(list))
		for _, w := range list {
			out = append(out, w.ID)
		}
		return out
	}

	list, err := svc.ListWorkouts(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids(list))

	list, err = svc.ListWorkouts(ctx, "2025-01-06", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, ids(list))

	list, err = svc.ListWorkouts(ctx, "2025-01-20", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "c"}, ids(list))

	list, err = svc.ListWorkouts(ctx, "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	_, err = svc.ListWorkouts(ctx, "2025-02-01", "2025-01-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.ListWorkouts(ctx, "01/02/2025", "")
	assert.ErrorContains(t, err, "use YYYY-MM-DD")

	repo.err = errors.New("store down")
	_, err = svc.ListWorkouts(ctx, "", "")
	assert.EqualError(t, err, "store down")
}
