package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/typed"
)

// A SelfValidator is a schema type checking rules its "validate" struct tags cannot express.
// A Resolver calls Validate after a body binds to the type and passes tag validation.
type SelfValidator interface {
	Validate() error
}

type validator struct {
	valid *v10.Validate
}

// NewValidator constructs the *validator.Validate a Resolver uses by default.
//
// Field names in errors are read from the "json" struct tag, falling back to "schema".
// The "enum" rule checks a field, or each item of a slice field, is a valid [typed.Enumerable].
func NewValidator() *v10.Validate {
	v := v10.New()
	v.RegisterValidation("enum", validateEnumerable)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "schema"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}

		return ""
	})

	return v
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags
// and then, if structPtr is a SelfValidator, its own rules.
// On failure, validate translates each tag issue to a ValidationError,
// returning them all as ValidationErrors.
func (v validator) validate(structPtr any) error {
	if err := v.validateTags(structPtr); err != nil {
		return err
	}

	if sv, ok := structPtr.(SelfValidator); ok {
		if err := sv.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (v validator) validateTags(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	var validateErrs ValidationErrors
	for _, ve := range errs {
		field := ve.Namespace()

		ns := strings.SplitN(field, ".", 2)
		if len(ns) == 2 {
			field = ns[1]
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		rule += "; " + ve.Type().String()

		validateErrs = append(validateErrs, ValidationError{
			Field: field,
			Got:   ve.Value(),
			Rule:  rule,
		})
	}

	return validateErrs
}

// validateEnumerable validates whether field is a valid Enumerable or slice of valid Enumerable.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()

	if field.Kind() == reflect.Slice {
		vals := make([]reflect.Value, 0, field.Len())
		for i := 0; i < field.Len(); i++ {
			vals = append(vals, field.Index(i))
		}

		return checkEnums(vals...)
	}

	return checkEnums(field)
}

// checkEnums asserts each [reflect.Value] is an Enumerable and valid.
func checkEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		enum, ok := item.Interface().(typed.Enumerable)
		if !ok || enum.Valid() != nil {
			return false
		}
	}

	return true
}
