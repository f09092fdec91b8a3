package services

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"gym-backend-go/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
)

var validate = newValidator()

// newValidator reports field errors under their column names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("db"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Form reads typed fields out of submitted form values and remembers the
// first missing or malformed one.
type Form struct {
	values url.Values
	err    error
}

func NewForm(values url.Values) *Form {
	if values == nil {
		values = url.Values{}
	}
	return &Form{values: values}
}

func (f *Form) Err() error {
	return f.err
}

func (f *Form) raw(name string, optional bool) (string, bool) {
	if f.err != nil {
		return "", false
	}
	items, ok := f.values[name]
	value := ""
	if ok && len(items) > 0 {
		value = strings.TrimSpace(items[0])
	}
	if value == "" {
		if !optional {
			f.err = ErrBadRequest("Missing field: " + name)
		}
		return "", false
	}
	return value, true
}

func (f *Form) invalid(name string) {
	f.err = ErrBadRequest("Invalid value for field: " + name)
}

func (f *Form) String(name string) string {
	value, _ := f.raw(name, false)
	return value
}

// OptionalString returns nil when the field is absent or blank.
func (f *Form) OptionalString(name string) *string {
	value, ok := f.raw(name, true)
	if !ok {
		return nil
	}
	return &value
}

func (f *Form) Int(name string) int {
	value, ok := f.raw(name, false)
	if !ok {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		f.invalid(name)
		return 0
	}
	return parsed
}

func (f *Form) ID(name string) int64 {
	value, ok := f.raw(name, false)
	if !ok {
		return 0
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		f.invalid(name)
		return 0
	}
	return parsed
}

// Decimal keeps the exact digits of a non-negative amount. A comma is
// accepted as the decimal separator.
func (f *Form) Decimal(name string) pgtype.Numeric {
	value, ok := f.raw(name, false)
	if !ok {
		return pgtype.Numeric{}
	}
	var parsed pgtype.Numeric
	err := parsed.Scan(strings.ReplaceAll(value, ",", "."))
	if err != nil || !parsed.Valid || parsed.NaN || parsed.InfinityModifier != pgtype.Finite || parsed.Int.Sign() < 0 {
		f.invalid(name)
		return pgtype.Numeric{}
	}
	return parsed
}

func (f *Form) Date(name string) models.Date {
	value, ok := f.raw(name, false)
	if !ok {
		return models.Date{}
	}
	parsed, err := models.ParseDate(value)
	if err != nil || parsed.IsZero() {
		f.invalid(name)
		return models.Date{}
	}
	return parsed
}

func (f *Form) Clock(name string) models.Clock {
	value, ok := f.raw(name, false)
	if !ok {
		return models.Clock{}
	}
	parsed, err := models.ParseClock(value)
	if err != nil {
		f.invalid(name)
		return models.Clock{}
	}
	return parsed
}

// ValidateRow checks struct tags on a bound row.
func ValidateRow(row interface{}) error {
	err := validate.Struct(row)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		return ErrBadRequest("Invalid value for field: " + fieldErrs[0].Field())
	}
	return ErrBadRequest("Invalid form")
}
