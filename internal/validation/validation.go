// Package validation checks StudentFormData before it is handed to a store.
//
// The rules live as validate:"..." struct tags on types.StudentFormData and
// are run by go-playground/validator. This package adds the custom tags the
// roster needs and turns the resulting FieldErrors into the messages shown
// next to each form field:
//
//	{ "name": "Name is required", "age": "Age must be between 1 and 100" }
//
// Every field is checked. Within one field only the first failing rule is
// reported.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// Errors maps a JSON field name to its error message.
// An empty Errors means the data is valid.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Validator validates form data against a fixed year window.
// It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	years    types.YearRange
}

// New returns a Validator that accepts years inside years. The window is
// fixed for the Validator's lifetime; a zero YearRange accepts any
// non-zero year.
func New(years types.YearRange) *Validator {
	v := validator.New()

	// Report fields by their JSON name ("rollNo") rather than the Go name
	// ("RollNo") so the keys line up with what clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("classname", func(fl validator.FieldLevel) bool {
		return types.IsValidClass(fl.Field().String())
	})
	_ = v.RegisterValidation("yearwindow", func(fl validator.FieldLevel) bool {
		return years.Contains(int(fl.Field().Int()))
	})

	return &Validator{validate: v, years: years}
}

// Years returns the window this Validator enforces.
func (v *Validator) Years() types.YearRange {
	return v.years
}

// Validate checks data and returns one message per failing field.
func (v *Validator) Validate(data types.StudentFormData) Errors {
	errs := Errors{}

	err := v.validate.Struct(data)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only InvalidValidationError lands here, which means a non-struct
		// was passed in. StudentFormData is always a struct.
		panic(fmt.Sprintf("validation: unexpected error: %v", err))
	}

	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = v.message(fe)
	}

	return errs
}

// message converts a single FieldError into the text shown to the user.
func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		if fe.Tag() == "max" {
			return "Name must be 100 characters or fewer"
		}
		return "Name is required"
	case "rollNo":
		if fe.Tag() == "max" {
			return "Roll No must be 20 characters or fewer"
		}
		return "Roll No is required"
	case "age":
		return "Age must be between 1 and 100"
	case "className":
		if fe.Tag() == "classname" {
			return "Class must be one of Class 1 to Class 12"
		}
		return "Class is required"
	case "year":
		if fe.Tag() == "yearwindow" {
			return fmt.Sprintf("Year must be between %d and %d", v.years.Min, v.years.Max)
		}
		return "Year is required"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
