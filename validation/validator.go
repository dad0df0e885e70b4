// Package validation declares the accepted shape of every request payload
// and checks it with a shared go-playground/validator instance.
//
// Constraints live in struct tags on the request types in requests.go.
// Failures come back as Errors, a list of {field, message} pairs keyed by
// the JSON field name.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// FieldError is a single failed constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned by Struct when one or more constraints fail.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// Get returns the singleton validator with the app's custom tags registered.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			n, ok := field.Interface().(NullableString)
			if !ok || n.Value == nil {
				return nil
			}
			return *n.Value
		}, NullableString{})

		mustRegister(v, "colorhex", func(fl validator.FieldLevel) bool {
			return hexColor.MatchString(fl.Field().String())
		})
		mustRegister(v, "isodatetime", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(time.RFC3339, fl.Field().String())
			return err == nil
		})
		mustRegister(v, "strongpassword", func(fl validator.FieldLevel) bool {
			return IsStrongPassword(fl.Field().String())
		})

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// IsStrongPassword requires at least one upper-case letter, one lower-case
// letter and one digit. Length is checked separately by the min tag.
func IsStrongPassword(s string) bool {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// Struct validates s and returns Errors on failure.
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{Field: fe.Field(), Message: translate(fe)}
	}
	return out
}

// Decode reads a JSON body into dst and validates it. Malformed JSON is
// reported as a single body-level field error. Optional fields may be
// omitted but not sent as null; only NullableString fields accept null.
func Decode(data []byte, dst interface{}) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return Errors{{Field: "body", Message: malformed(err)}}
	}
	if errs := explicitNulls(data, dst); len(errs) > 0 {
		return errs
	}
	return Struct(dst)
}

func malformed(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s has the wrong type, expected %s", typeErr.Field, typeErr.Type)
	}
	return "request body must be valid JSON"
}

var messages = map[string]string{
	"required":       "%s is required",
	"email":          "%s must be a valid email address",
	"colorhex":       "%s must be a hex color like #4ADE80",
	"isodatetime":    "%s must be an ISO 8601 date-time",
	"strongpassword": "%s must contain an uppercase letter, a lowercase letter and a number",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

func translate(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, strings.ReplaceAll(fe.Param(), " ", ", "))
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
