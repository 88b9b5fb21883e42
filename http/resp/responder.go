package resp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/xy-planning-network/typed/http/req"
	"github.com/xy-planning-network/typed/logger"
)

// responderFrames is the number of frames between a handler calling Responder.Err
// and the Err Fn logging.
const responderFrames = 3

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes common methods for writing structured data as an HTTP response.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	return d
}

type errSchema struct {
	Error            string                `json:"error"`
	Status           int                   `json:"status"`
	ValidationErrors []req.ValidationError `json:"validationErrors,omitempty"`
}

// Err responds with err in JSON format, logging it:
//
//	{
//		"error": "typed/http/req: 422 Unprocessable Entity: ...",
//		"status": 422,
//		"validationErrors": [{"field": "name", "got": "", "rule": "required; string"}]
//	}
//
// The status code is the one err carries, or http.StatusInternalServerError,
// unless opts set another with Code.
// Errors with a 5xx status are not exposed; "error" is the status text instead.
// "validationErrors" is set when err wraps req.ValidationErrors.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append([]Fn{Err(err)}, opts...)...)
	if errors.Is(nested, ErrDone) {
		return
	}

	if rr.code == 0 {
		rr.code = http.StatusInternalServerError
	}

	payload := errSchema{Error: http.StatusText(rr.code), Status: rr.code}
	if err != nil && rr.code < http.StatusInternalServerError {
		payload.Error = err.Error()
	}

	var ve req.ValidationErrors
	if errors.As(err, &ve) {
		payload.ValidationErrors = ve
	}

	if nested := doer.write(w, rr.code, payload); nested != nil {
		doer.logger.Error(nested.Error(), newLogContext(r, nested, nil))
	}
}

type jsonSchema struct {
	D any `json:"data,omitempty"`
}

// Json responds with data in JSON format, collating it from Data() and setting appropriate headers.
//
//	{
//		"data": {}
//	}
//
// The default status code is http.StatusOK.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	if err := doer.write(w, rr.code, jsonSchema{D: rr.data}); err != nil {
		doer.Err(w, r, err)
		return err
	}

	return nil
}

// write encodes payload before writing the header,
// so a payload failing to encode leaves w untouched.
func (doer *Responder) write(w http.ResponseWriter, code int, payload any) error {
	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		return fmt.Errorf("cannot encode %T: %w", payload, err)
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass options in the correct order.
// do stops at the first option returning an error
// or when the *http.Request.Context is done.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{w: w, r: r}

	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err := opt(*doer, resp); err != nil {
				return resp, err
			}
		}
	}

	return resp, nil
}
