package req

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xy-planning-network/typed"
)

const (
	defaultContentType = "binary/octet-stream"

	// defaultMaxMemory is the most of a multipart body held in memory (32 MiB).
	defaultMaxMemory = 32 << 20

	formEncoded   = "application/x-www-form-urlencoded"
	formMultipart = "multipart/form-data"
)

// A Request is the buffered part of an HTTP request a Resolver reads.
// A Resolver never modifies a Request.
type Request struct {
	Body   []byte
	Header http.Header
}

// FromHTTP buffers the body of r into a *Request.
//
// FromHTTP replaces r.Body so it can be read again.
// Reading past a limit set by [http.MaxBytesReader] fails with a 422 *Error.
func FromHTTP(r *http.Request) (*Request, error) {
	rq := &Request{Header: r.Header.Clone()}
	if r.Body == nil || r.Body == http.NoBody {
		return rq, nil
	}

	b, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(b))

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, unprocessablef("%w: body exceeds %d bytes", typed.ErrBadFormat, tooLarge.Limit)
	}

	if err != nil {
		return nil, fmt.Errorf("typed/http/req: %w: failed reading request body: %s", typed.ErrUnexpected, err)
	}

	rq.Body = b
	return rq, nil
}

// ContentType is the Content-Type header set on rq or binary/octet-stream if not set.
func (rq *Request) ContentType() string {
	if ct := rq.Header.Get("Content-Type"); ct != "" {
		return ct
	}

	return defaultContentType
}

// MediaType is the ContentType of rq, lower cased, stripped of any parameters.
func (rq *Request) MediaType() string {
	mt, _, _ := strings.Cut(rq.ContentType(), ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// A BodyDecoder decodes the body of a *Request into a value a Resolver validates against a Target.
//
// Errors returned by a BodyDecoder that are not a StatusCoder
// are treated as a malformed body.
type BodyDecoder interface {
	DecodeBody(rq *Request) (any, error)
}

// BodyDecoderFunc adapts an ordinary function into a BodyDecoder.
type BodyDecoderFunc func(rq *Request) (any, error)

// DecodeBody calls fn(rq).
func (fn BodyDecoderFunc) DecodeBody(rq *Request) (any, error) { return fn(rq) }

// A Form is a decoded form body.
// Each value is nil, a string or a []string, for a field set zero times, once, or more.
type Form map[string]any

// NewForm normalizes vals into a Form.
func NewForm(vals url.Values) Form {
	f := make(Form, len(vals))
	for k, v := range vals {
		switch len(v) {
		case 0:
			f[k] = nil
		case 1:
			f[k] = v[0]
		default:
			f[k] = append([]string(nil), v...)
		}
	}

	return f
}

// Values converts f back into url.Values, dropping unset fields.
func (f Form) Values() url.Values {
	vals := make(url.Values, len(f))
	for k, v := range f {
		switch v := v.(type) {
		case string:
			vals[k] = []string{v}
		case []string:
			vals[k] = v
		}
	}

	return vals
}

type defaultDecoder struct {
	maxMemory int64
}

// NewDefaultDecoder constructs the BodyDecoder a Resolver uses unless configured with another one.
//
// It decodes a form body (application/x-www-form-urlencoded or multipart/form-data) into a [Form].
// Failing to find any fields, it decodes a body
// whose media type is application/json or ends in +json
// into a JSON value, with numbers as a [json.Number].
// Otherwise, it fails with a 415 *Error.
//
// maxMemory caps how much of a multipart body is held in memory;
// file parts are discarded.
func NewDefaultDecoder(maxMemory int64) BodyDecoder {
	if maxMemory <= 0 {
		maxMemory = defaultMaxMemory
	}

	return defaultDecoder{maxMemory: maxMemory}
}

func (d defaultDecoder) DecodeBody(rq *Request) (any, error) {
	vals, err := d.parseForm(rq)
	if err != nil {
		return nil, unprocessable(err)
	}

	if len(vals) > 0 {
		return NewForm(vals), nil
	}

	if mt := rq.MediaType(); mt == "application/json" || strings.HasSuffix(mt, "+json") {
		return decodeJSON(rq.Body)
	}

	return nil, unsupportedMediaType(fmt.Errorf("%w: cannot decode %q", typed.ErrUnsupported, rq.ContentType()))
}

// parseForm parses a form-encoded body.
// Bodies of other content types yield no values and no error.
func (d defaultDecoder) parseForm(rq *Request) (url.Values, error) {
	ct := rq.ContentType()
	isEncoded := strings.HasPrefix(ct, formEncoded)
	isMultipart := strings.HasPrefix(ct, formMultipart)
	if !isEncoded && !isMultipart {
		return nil, nil
	}

	if enc := rq.Header.Values("Content-Encoding"); len(enc) > 0 {
		return nil, fmt.Errorf("%w: unsupported Content-Encoding %q", typed.ErrBadFormat, strings.Join(enc, ", "))
	}

	if isEncoded {
		vals, err := url.ParseQuery(string(rq.Body))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s body: %s", typed.ErrBadFormat, formEncoded, err)
		}

		return vals, nil
	}

	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %s", typed.ErrBadFormat, formMultipart, err)
	}

	boundary := params["boundary"]
	if boundary == "" {
		return nil, fmt.Errorf("%w: multipart boundary not found", typed.ErrBadFormat)
	}

	form, err := multipart.NewReader(bytes.NewReader(rq.Body), boundary).ReadForm(d.maxMemory)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %s", typed.ErrBadFormat, formMultipart, err)
	}
	defer form.RemoveAll()

	return url.Values(form.Value), nil
}

// decodeJSON decodes a single JSON value from body.
// An empty body is null.
func decodeJSON(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, unprocessablef("%w: failed decoding JSON body: %s", typed.ErrBadFormat, err)
	}

	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, unprocessablef("%w: unexpected data after JSON value", typed.ErrBadFormat)
	}

	return v, nil
}
