package resp

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/typed/http/req"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w    http.ResponseWriter
	r    *http.Request
	code int
	data any
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided empty interface for writing to the client.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code carried by e, or http.StatusInternalServerError, and logs e.
//
// Errors with a 4xx status log as warnings, all others as errors.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		code := http.StatusInternalServerError
		if e != nil {
			code = req.Status(e)
			logCtx := newLogContext(r.r, e, map[string]any{"status": code})
			if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
				d.logger.Warn(e.Error(), logCtx)
			} else {
				d.logger.Error(e.Error(), logCtx)
			}
		}

		return Code(code)(d, r)
	}
}

// Header sets the response header key to val.
func Header(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if key == "" {
			return fmt.Errorf("%w: no header key", ErrMissingData)
		}

		r.w.Header().Set(key, val)
		return nil
	}
}
