package req

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/schema"
	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/logger"
)

// A Resolver decodes request bodies and validates them against a Target.
//
// A Resolver is safe for concurrent use; it holds no state between calls.
type Resolver struct {
	decoder   BodyDecoder
	forms     *schema.Decoder
	formTag   string
	hook      BodyDecoder
	logger    logger.Logger
	maxMemory int64
	validator
}

// NewResolver constructs a *Resolver, applying opts over the defaults.
func NewResolver(opts ...ResolverOptFn) *Resolver {
	r := &Resolver{
		formTag:   "json",
		maxMemory: defaultMaxMemory,
		validator: validator{NewValidator()},
	}

	for _, opt := range opts {
		opt(r)
	}

	r.forms = newFormDecoder(r.formTag)
	r.decoder = r.hook
	if r.decoder == nil {
		r.decoder = NewDefaultDecoder(r.maxMemory)
	}

	return r
}

// Decode decodes the body of rq with the BodyDecoder set by [WithBodyDecoder]
// or the default decoding.
//
// Errors not carrying a status are returned as a 422 *Error.
func (r *Resolver) Decode(rq *Request) (any, error) {
	body, err := r.decoder.DecodeBody(rq)
	if err == nil {
		return body, nil
	}

	var sc StatusCoder
	if !errors.As(err, &sc) {
		err = unprocessable(err)
	}

	r.debug("failed decoding request body", err, map[string]any{"contentType": rq.ContentType()})
	return nil, err
}

// Resolve decodes the body of rq and validates it against target:
//   - an absent Target resolves to nil when the body is empty or null;
//   - a schema Target binds the body to a new struct, validating it;
//   - a primitive Target resolves to the body only if it already is of the target type.
//
// Any failure is an *Error with a 415 or 422 status.
func (r *Resolver) Resolve(rq *Request, target Target) (any, error) {
	body, err := r.Decode(rq)
	if err != nil {
		return nil, err
	}

	var val any
	switch target.Kind() {
	case TargetAbsent:
		val, err = resolveAbsent(body)
	case TargetSchema:
		val, err = r.resolveSchema(body, target)
	case TargetPrimitive:
		val, err = resolvePrimitive(body, target.Type())
	default:
		err = fmt.Errorf("%w: unknown target %s", typed.ErrUnexpected, target)
	}

	if err != nil {
		r.debug("failed resolving request body", err, map[string]any{"target": target.String()})
		return nil, err
	}

	return val, nil
}

// ResolveAs resolves the body of rq into a T.
// An absent body resolving to nil returns the zero value of T.
//
// Confer [Resolver.Resolve].
func ResolveAs[T any](r *Resolver, rq *Request) (T, error) {
	var zero T
	val, err := r.Resolve(rq, TargetOf[T]())
	if err != nil || val == nil {
		return zero, err
	}

	t, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("typed/http/req: %w: resolved %T, not %T", typed.ErrUnexpected, val, zero)
	}

	return t, nil
}

// ResolveRequest buffers the body of hr and resolves it into a T.
//
// Confer [FromHTTP] and [ResolveAs].
func ResolveRequest[T any](r *Resolver, hr *http.Request) (T, error) {
	rq, err := FromHTTP(hr)
	if err != nil {
		var zero T
		return zero, err
	}

	return ResolveAs[T](r, rq)
}

func resolveAbsent(body any) (any, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		if len(b) == 0 {
			return nil, nil
		}
	}

	return nil, unprocessablef("%w: expected no body, got %T", typed.ErrNotValid, body)
}

func (r *Resolver) resolveSchema(body any, target Target) (any, error) {
	ptr := newStruct(target)

	var err error
	if f, ok := body.(Form); ok {
		err = r.bindForm(f, ptr.Interface())
	} else {
		err = bindJSON(body, ptr.Interface())
	}

	if err != nil {
		return nil, unprocessable(err)
	}

	if err := r.validate(ptr.Interface()); err != nil {
		return nil, unprocessable(err)
	}

	if target.Type().Kind() == reflect.Pointer {
		return ptr.Interface(), nil
	}

	return ptr.Elem().Interface(), nil
}

// resolvePrimitive accepts body only if it is of type t,
// converting a JSON number to t's numeric kind when it is representable exactly.
// A null body satisfies only an interface type.
func resolvePrimitive(body any, t reflect.Type) (any, error) {
	if body == nil {
		if t.Kind() == reflect.Interface {
			return reflect.Zero(t).Interface(), nil
		}

		return nil, unprocessablef("%w: expected %s, got null", typed.ErrNotValid, t)
	}

	if accepts(t, body) {
		return body, nil
	}

	if f, ok := body.(Form); ok {
		if m := map[string]any(f); accepts(t, m) {
			return m, nil
		}
	}

	if n, ok := body.(json.Number); ok {
		if val, ok := convertNumber(n, t); ok {
			return val, nil
		}
	}

	return nil, unprocessablef("%w: expected %s, got %T", typed.ErrNotValid, t, body)
}

func convertNumber(n json.Number, t reflect.Type) (any, bool) {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(n.String(), 10, t.Bits())
		if err != nil {
			return nil, false
		}
		v.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(n.String(), 10, t.Bits())
		if err != nil {
			return nil, false
		}
		v.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(n.String(), t.Bits())
		if err != nil {
			return nil, false
		}
		v.SetFloat(f)

	default:
		return nil, false
	}

	return v.Interface(), true
}

func (r *Resolver) debug(msg string, err error, data map[string]any) {
	if r.logger == nil {
		return
	}

	r.logger.Debug(msg, &logger.LogContext{Caller: logger.CurrentCaller(), Data: data, Error: err})
}

// accepts reports whether body is exactly of type t or implements the interface t.
func accepts(t reflect.Type, body any) bool {
	bt := reflect.TypeOf(body)
	return bt == t || (t.Kind() == reflect.Interface && bt.Implements(t))
}
