package ranger

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadConfig = errors.New("bad config")
	ErrNotExist  = errors.New("not exist")
	ErrNotValid  = errors.New("invalid")
)

// A routeError is a request no Route can handle,
// carrying the status code a *resp.Responder writes for it.
type routeError struct {
	status int
	method string
	path   string
}

func (e routeError) Error() string {
	return fmt.Sprintf("%d %s: %s %s", e.status, http.StatusText(e.status), e.method, e.path)
}

func (e routeError) StatusCode() int { return e.status }

func (e routeError) Unwrap() error { return ErrNotExist }
