package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var flagNames = map[string]string{
	"Difficulties":  "--difficulty",
	"MaxDifficulty": "--max-difficulty",
	"Recent":        "--recent",
	"Interval":      "--interval",
}

// Validate checks drill settings and reports violations by flag name.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		if c.MaxDifficulty == 0 && len(c.Difficulties) == 0 {
			return fmt.Errorf("--difficulty must select at least one tier")
		}
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}

func describeFieldError(fe validator.FieldError) string {
	field, _, _ := strings.Cut(fe.StructField(), "[")
	name, ok := flagNames[field]
	if !ok {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be >= %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be <= %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}
