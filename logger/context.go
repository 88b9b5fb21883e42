package logger

import (
	"bytes"
	"encoding"
	"fmt"
	"io"
	"mime"
	"net/http"
	"runtime"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/xy-planning-network/typed"
)

var (
	_ encoding.TextMarshaler = LogContext{}
	_ fmt.Stringer           = LogContext{}
)

const maskedKey = "password"

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the caller file and line number with the provided value.
	//
	// Caller is not logged in the text of a LogContext.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request
}

// MarshalText converts LogContext into a JSON representation,
// eliminating zero-value fields or fields not requiring logging.
//
// A JSON request body is summarized into the "request.json" key
// and a parsed form into "request.form";
// values under the key "password" are masked in both.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.Request != nil {
		m["request"] = requestSummary(lc.Request)
	}

	return json.Marshal(m)
}

// String stringifies LogContext as a JSON representation of it.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err)
	}

	return string(b)
}

// CurrentCaller retrieves the caller for the caller of CurrentCaller,
// formatted for using as a value in LogContext.Caller.
//
//	myFunc() { 		<- returns this caller
//		func() {
//			CurrentCaller()
//		}()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf(callerTmpl, immediateFilepath(file), line)
}

// requestSummary collects the parts of r worth logging.
//
// Reading a JSON body replaces r.Body so it can be read again.
func requestSummary(r *http.Request) map[string]any {
	s := map[string]any{"method": r.Method}
	if r.URL != nil {
		s["url"] = r.URL.String()
	}

	if id, ok := r.Context().Value(typed.RequestIDKey).(string); ok {
		s["id"] = id
	}

	ct := r.Header.Get("Content-Type")
	if ct != "" {
		s["contentType"] = ct
	}

	if isJSON(ct) && r.Body != nil {
		b, err := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(b))
		if err == nil && gjson.ValidBytes(b) {
			s["json"] = maskJSON(gjson.ParseBytes(b))
		}
	}

	if r.Form != nil {
		form := r.Form
		if _, ok := form[maskedKey]; ok {
			form = make(map[string][]string, len(r.Form))
			for k, v := range r.Form {
				form[k] = v
			}
			typed.Mask(form, maskedKey)
		}

		s["form"] = form
	}

	return s
}

// maskJSON converts res into plain values, masking a top-level password.
func maskJSON(res gjson.Result) any {
	if !res.IsObject() {
		return res.Value()
	}

	obj, _ := res.Value().(map[string]any)
	if _, ok := obj[maskedKey]; ok {
		obj[maskedKey] = typed.LogMaskVal
	}

	return obj
}

func isJSON(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}

	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
