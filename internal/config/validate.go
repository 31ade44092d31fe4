package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+[0-9]+$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func settingsValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// report config keys instead of Go field names
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if k := f.Tag.Get("key"); k != "" {
				return k
			}
			return f.Name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhoneNumber(fl.Field().String())
		})
		_ = v.RegisterValidation("token", func(fl validator.FieldLevel) bool {
			return IsSingleToken(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// IsPhoneNumber reports whether s is a "+" followed by one or more digits.
func IsPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// IsSingleToken reports whether s is non-empty and contains no whitespace.
func IsSingleToken(s string) bool {
	return s != "" && !strings.ContainsFunc(s, unicode.IsSpace)
}

// Validate checks every invariant of s. The returned error wraps ErrInvalidSettings
// and names each offending config key.
func Validate(s Settings) error {
	err := settingsValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := fe.Field()
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "phone":
		return key + " must be '+' followed by digits"
	case "token":
		return key + " must be a single word without whitespace"
	case "min", "max", "gt", "oneof":
		return fmt.Sprintf("%s fails %s=%s", key, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s fails %s", key, fe.Tag())
	}
}
