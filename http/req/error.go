package req

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xy-planning-network/typed"
)

// A StatusCoder is an error carrying the HTTP status code a response ought to use.
type StatusCoder interface {
	StatusCode() int
}

// An Error is the terminal failure of resolving a request body.
//
// Status is either [http.StatusUnsupportedMediaType] or [http.StatusUnprocessableEntity].
// An Error unwraps to [typed.ErrUnsupported] or [typed.ErrNotValid], respectively,
// and to Err, if set.
type Error struct {
	Status int
	Err    error
}

func unsupportedMediaType(err error) *Error {
	return &Error{Status: http.StatusUnsupportedMediaType, Err: err}
}

func unprocessable(err error) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Err: err}
}

func unprocessablef(format string, args ...any) *Error {
	return unprocessable(fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("typed/http/req: %d %s", e.Status, http.StatusText(e.Status))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// StatusCode implements StatusCoder.
func (e *Error) StatusCode() int { return e.Status }

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch e.Status {
	case http.StatusUnsupportedMediaType:
		errs = append(errs, typed.ErrUnsupported)
	case http.StatusUnprocessableEntity:
		errs = append(errs, typed.ErrNotValid)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// Status reads the HTTP status code carried by err.
// If err is nil, Status returns [http.StatusOK];
// if nothing in err's chain is a StatusCoder, [http.StatusInternalServerError].
func Status(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}

	return http.StatusInternalServerError
}

// A ValidationError is an issue with a concrete value not matching the rule set on its field.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

// ValidationErrors is a set of ValidationError.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msg := fmt.Sprintf("field=%q rule=%q got=%q", err.Field, err.Rule, fmt.Sprint(err.Got))
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "\n")
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	var errs struct {
		E []ValidationError `json:"validationErrors,omitempty"`
	}

	errs.E = append(errs.E, v...)

	return json.Marshal(errs)
}

func (ValidationErrors) Unwrap() error { return typed.ErrNotValid }
