package workouts

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/chihironakai0517/workout-tracker/internal/store"
)

var (
	ErrUnknownMuscleGroup = errors.New("unknown muscle group")
	ErrEmptyExerciseName  = errors.New("exercise name empty")
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

var (
	defaultPresets     Presets
	defaultPresetsOnce sync.Once
)

// Presets maps a muscle group id to its ordered exercise names.
type Presets map[string][]string

func (p Presets) clone() Presets {
	c := make(Presets, len(p))
	for group, names := range p {
		c[group] = append([]string{}, names...)
	}
	return c
}

// DefaultPresets returns a copy of the built-in catalogue.
func DefaultPresets() Presets {
	defaultPresetsOnce.Do(func() {
		if err := yaml.Unmarshal(defaultPresetsYAML, &defaultPresets); err != nil {
			panic(fmt.Sprintf("invalid embedded presets: %s", err))
		}
	})
	return defaultPresets.clone()
}

// PresetsRepo keeps the full, user-editable preset catalogue under one key.
// Until the first edit the defaults are served.
type PresetsRepo struct {
	doc *store.Singleton[Presets]
	mu  sync.Mutex
}

func NewPresetsRepo(kv store.KV) *PresetsRepo {
	return &PresetsRepo{
		doc: store.NewSingleton[Presets](kv, CustomExercisesKey),
	}
}

func (r *PresetsRepo) GetExercisePresets(ctx context.Context) Presets {
	stored := r.doc.Load(ctx)
	if stored == nil || len(*stored) == 0 {
		return DefaultPresets()
	}
	return *stored
}

// AddCustomExercise appends name to the group unless it is already there.
func (r *PresetsRepo) AddCustomExercise(ctx context.Context, group, name string) (Presets, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyExerciseName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	presets := r.GetExercisePresets(ctx)
	names, ok := presets[group]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMuscleGroup, group)
	}
	if slices.Contains(names, name) {
		return presets, nil
	}

	presets[group] = append(names, name)
	r.doc.Save(ctx, &presets)
	return presets, nil
}

func (r *PresetsRepo) RemoveCustomExercise(ctx context.Context, group, name string) (Presets, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	presets := r.GetExercisePresets(ctx)
	names, ok := presets[group]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMuscleGroup, group)
	}

	presets[group] = slices.DeleteFunc(names, func(n string) bool { return n == name })
	r.doc.Save(ctx, &presets)
	return presets, nil
}

// ResetToDefaultPresets overwrites every customization with the defaults.
func (r *PresetsRepo) ResetToDefaultPresets(ctx context.Context) Presets {
	r.mu.Lock()
	defer r.mu.Unlock()

	presets := DefaultPresets()
	r.doc.Save(ctx, &presets)
	return presets
}

// ReplacePresets stores an imported catalogue as is.
func (r *PresetsRepo) ReplacePresets(ctx context.Context, presets Presets) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc.Save(ctx, &presets)
}
