package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterStructValidation(searchStructLevel, SearchConfig{})
}

// searchStructLevel requires a positive budget of the selected kind.
func searchStructLevel(sl validator.StructLevel) {
	s := sl.Current().Interface().(SearchConfig)
	switch s.CalculationsDoneCondition {
	case "iterations":
		if s.Iterations <= 0 {
			sl.ReportError(s.Iterations, "Iterations", "iterations", "budget", "")
		}
	case "time":
		if s.Duration <= 0 {
			sl.ReportError(s.Duration, "Duration", "duration", "budget", "")
		}
	}
}

// Validate checks every field. The error lists all violations and wraps
// ErrInvalid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of [%s]", field, fe.Value(), fe.Param())
	case "budget":
		return fmt.Sprintf("%s: must be > 0 for the selected calculations_done_condition", field)
	case "required_if":
		return fmt.Sprintf("%s: required when %s", field, fe.Param())
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("%s: %v violates %s=%s", field, fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", field, fe.Tag())
	}
}
