package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/wxadapter/errors"
)

const msgRequired = "is required"

// FieldError is a failed check on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the result of a validation run.
type Errors []FieldError

// Err converts es into an *errors.AppError: MISSING_FIELD for a single
// missing field, INVALID_INPUT listing every failure otherwise. It returns
// nil when es is empty.
func (es Errors) Err() error {
	switch {
	case len(es) == 0:
		return nil
	case len(es) == 1 && es[0].Message == msgRequired:
		return errors.MissingField(es[0].Field)
	}
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Field + ": " + e.Message
	}
	return errors.Validation(strings.Join(msgs, "; ")).WithDetail("fields", []FieldError(es))
}

var tags = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
})

// Struct runs the `validate` tags of s.
func Struct(s any) Errors {
	err := tags().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !stderrors.As(err, &ves) {
		return Errors{{Field: "", Message: err.Error()}}
	}
	out := make(Errors, len(ves))
	for i, fe := range ves {
		out[i] = FieldError{Field: fe.Field(), Message: describe(fe)}
	}
	return out
}

// Validate runs the `validate` tags of s and returns the combined error.
func Validate(s any) error {
	return Struct(s).Err()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	}
	return "is invalid"
}

// Checker accumulates programmatic checks.
type Checker struct {
	errs Errors
}

// New returns an empty Checker.
func New() *Checker {
	return &Checker{}
}

// Required fails field when value is blank.
func (c *Checker) Required(field, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		c.errs = append(c.errs, FieldError{Field: field, Message: msgRequired})
	}
	return c
}

// Check fails field with message unless ok.
func (c *Checker) Check(ok bool, field, message string) *Checker {
	if !ok {
		c.errs = append(c.errs, FieldError{Field: field, Message: message})
	}
	return c
}

// When runs fn only if cond holds.
func (c *Checker) When(cond bool, fn func(*Checker)) *Checker {
	if cond {
		fn(c)
	}
	return c
}

// Merge appends the results of another run.
func (c *Checker) Merge(es Errors) *Checker {
	c.errs = append(c.errs, es...)
	return c
}

// Errors returns the failures collected so far.
func (c *Checker) Errors() Errors {
	return c.errs
}

// Err returns Errors().Err().
func (c *Checker) Err() error {
	return c.errs.Err()
}
