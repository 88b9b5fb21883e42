package req

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/goccy/go-json"
	"github.com/gorilla/schema"
	"github.com/xy-planning-network/typed"
)

func newFormDecoder(tag string) *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	dec.SetAliasTag(tag)

	return dec
}

// bindForm decodes f into structPtr.
func (r *Resolver) bindForm(f Form, structPtr any) error {
	if err := r.forms.Decode(structPtr, f.Values()); err != nil {
		return translateFormError(err)
	}

	return nil
}

// bindJSON decodes the JSON-compatible body into structPtr.
// Fields in body structPtr does not define are ignored.
func bindJSON(body any, structPtr any) error {
	if body == nil {
		return fmt.Errorf("%w: no body to bind", typed.ErrNotValid)
	}

	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: cannot encode %T: %s", typed.ErrBadFormat, body, err)
	}

	if err := json.NewDecoder(bytes.NewReader(b)).Decode(structPtr); err != nil {
		return translateJSONError(err)
	}

	return nil
}

// translateJSONError converts an error decoding JSON into a struct into standardized errors.
func translateJSONError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ValidationErrors{{
			Field: typeErr.Field,
			Got:   typeErr.Value,
			Rule:  "must be " + typeErr.Type.String(),
		}}
	}

	return fmt.Errorf("%w: %s", typed.ErrBadFormat, err)
}

// translateFormError converts an error returned by *schema.Decoder into standardized errors.
// Mismatches between a form's fields and the expected shape become ValidationErrors;
// anything else is a programming error, wrapped in ErrUnexpected.
func translateFormError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", typed.ErrBadFormat, err)
	}

	keys := make([]string, 0, len(pkgErrs))
	for k := range pkgErrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var validErrs ValidationErrors
	for _, key := range keys {
		switch err := pkgErrs[key].(type) {
		case schema.ConversionError:
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				// NOTE(dlk): For non-slice values, err.Index is -1.
				Got:  fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule: "must be " + err.Type.String(),
			})

		case schema.EmptyFieldError:
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Rule:  "required",
			})

		case schema.UnknownKeyError:
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			})

		default:
			// NOTE(dlk): A field requiring a schema.Converter that is not registered
			// does not raise an error until a form sets a value for that field.
			return fmt.Errorf("%w: %s: %s", typed.ErrUnexpected, key, err)
		}
	}

	return validErrs
}

// newStruct allocates a zero value of t's struct, returning a pointer to it.
func newStruct(t Target) reflect.Value {
	return reflect.New(t.structType())
}
