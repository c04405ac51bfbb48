// Package validation turns request binding failures and cross-field rule
// violations into field-level error lists.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a list of field errors. It satisfies error so it can travel
// through service return values.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Err returns e as an error, or nil when it is empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// New builds a single-field validation error.
func New(field, message string) error {
	return Errors{{Field: field, Message: message}}
}

var symbolPattern = regexp.MustCompile(`[\W_]`)

// PasswordProblem returns the first complexity rule the password breaks, or "".
func PasswordProblem(password string) string {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case len(password) < 8:
		return "password must be at least 8 characters"
	case !lower:
		return "password must contain a lowercase letter"
	case !upper:
		return "password must contain an uppercase letter"
	case !digit:
		return "password must contain a number"
	case !symbolPattern.MatchString(password):
		return "password must contain a symbol"
	}
	return ""
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// ParseOptionalDate parses value when it is set and non-empty.
func ParseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

var registerOnce sync.Once

// Register installs the custom rules on v and makes it report JSON field names.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return PasswordProblem(fl.Field().String()) == ""
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("maxyear", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(time.Now().Year())
	})
	_ = v.RegisterValidation("seriesstatus", func(fl validator.FieldLevel) bool {
		return models.SeriesStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("liststatus", func(fl validator.FieldLevel) bool {
		return models.ListStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})
}

// RegisterWithGin installs the custom rules on gin's default validator.
func RegisterWithGin() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			Register(v)
		}
	})
}

// FromBindError converts an error returned by gin's ShouldBind* helpers.
func FromBindError(err error) Errors {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		out := make(Errors, 0, len(validationErrs))
		for _, fe := range validationErrs {
			out.Add(fe.Field(), message(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return Errors{{Field: field, Message: fmt.Sprintf("must be of type %s", describeKind(typeErr.Type))}}
	}

	if errors.Is(err, io.EOF) {
		return Errors{{Field: "body", Message: "request body is required"}}
	}

	return Errors{{Field: "body", Message: "malformed request body"}}
}

func message(fe validator.FieldError) string {
	kind := fe.Kind()
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email"
	case "url":
		return "must be a valid URL"
	case "password":
		if s, ok := fe.Value().(string); ok {
			return PasswordProblem(s)
		}
		return "password is too weak"
	case "date":
		return "must be a valid date"
	case "maxyear":
		return "year cannot be later than the current year"
	case "seriesstatus":
		return fmt.Sprintf("must be one of %q, %q", models.SeriesAiring, models.SeriesFinished)
	case "liststatus":
		return fmt.Sprintf("must be one of %s, %s, %s", models.ListToWatch, models.ListWatching, models.ListWatched)
	case "role":
		return fmt.Sprintf("must be one of %s, %s", models.RoleUser, models.RoleAdmin)
	case "min", "gte":
		if kind == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if kind == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return "must be greater than or equal to " + fe.Param()
	case "max", "lte":
		if kind == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if kind == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	}
	return "is invalid"
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	}
	return t.String()
}
