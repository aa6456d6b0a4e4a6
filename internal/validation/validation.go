package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// YYYY-MM-DD calendar date
		_ = validate.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(DateLayout, fl.Field().String())
			return err == nil
		})
		// HH:mm wall clock time
		_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(ClockLayout, fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Struct validates v against its `validate` tags and returns a readable error.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Var validates a single value against tag.
func Var(v any, tag string) error {
	return get().Var(v, tag)
}

// IsDate reports whether s is a YYYY-MM-DD date.
func IsDate(s string) bool {
	return Var(s, "date") == nil
}
