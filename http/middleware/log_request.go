package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/logger"
)

// A LogRequestRecord is what LogRequest logs about a request and the response to it.
type LogRequestRecord struct {
	BodySize       int           `json:"bodySize"`
	Duration       time.Duration `json:"duration"`
	Host           string        `json:"host"`
	ID             string        `json:"id,omitempty"`
	IPAddr         string        `json:"ipAddr,omitempty"`
	Method         string        `json:"method"`
	Path           string        `json:"path"`
	Protocol       string        `json:"protocol"`
	Referrer       string        `json:"referrer,omitempty"`
	ReqContentType string        `json:"reqContentType,omitempty"`
	Scheme         string        `json:"scheme,omitempty"`
	Status         int           `json:"status"`
	URI            string        `json:"uri"`
	UserAgent      string        `json:"userAgent,omitempty"`
}

// responseRecorder wraps http.ResponseWriter to capture the status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Unwrap returns the underlying ResponseWriter (supports http.ResponseController).
func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// LogRequest logs a LogRequestRecord of every request once it has been responded to,
// using the enclosed implementation of logger.Logger.
// Responses with a 5xx status log as errors, 4xx as warnings and all others as info.
//
// LogRequest scrubs the query values for the following keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			h.ServeHTTP(rec, r)

			record := newLogRequestRecord(r)
			record.BodySize = rec.size
			record.Duration = time.Since(start)
			record.Status = rec.status

			msg := fmt.Sprintf("%s %s %d", record.Method, record.URI, record.Status)
			ctx := &logger.LogContext{Data: map[string]any{"request": record}}
			switch {
			case record.Status >= http.StatusInternalServerError:
				ls.Error(msg, ctx)
			case record.Status >= http.StatusBadRequest:
				ls.Warn(msg, ctx)
			default:
				ls.Info(msg, ctx)
			}
		})
	}
}

func newLogRequestRecord(r *http.Request) LogRequestRecord {
	q := r.URL.Query()
	typed.Mask(q, "password")

	uri := r.URL.Path
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	record := LogRequestRecord{
		Host:           r.Host,
		Method:         r.Method,
		Path:           r.URL.Path,
		Protocol:       r.Proto,
		Referrer:       r.Header.Get("Referrer"),
		ReqContentType: r.Header.Get("Content-Type"),
		Scheme:         r.URL.Scheme,
		URI:            uri,
		UserAgent:      r.UserAgent(),
	}

	if id, ok := r.Context().Value(typed.RequestIDKey).(string); ok {
		record.ID = id
	}

	if ip, ok := r.Context().Value(typed.IpAddrKey).(string); ok {
		record.IPAddr = ip
	}

	return record
}
