package ranger

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/http/req"
	"github.com/xy-planning-network/typed/http/resp"
	"github.com/xy-planning-network/typed/http/router"
	"github.com/xy-planning-network/typed/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRouter is an example of the second.
// The *Ranger is updated only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithBaseURL sets the base URL the typed app runs on,
// which the default middlewares allow cross-origin requests from.
func WithBaseURL(u string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		good, err := url.ParseRequestURI(u)
		if err != nil {
			return nil, fmt.Errorf("%w: base URL %q: %s", ErrNotValid, u, err)
		}

		rng.url = good
		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the typed app,
// as the base context of every request and as the parent of Guide's context.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithEnvironment sets the Environment the typed app runs in,
// in lieu of reading it from the ENVIRONMENT env var.
func WithEnvironment(env typed.Environment) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if err := env.Valid(); err != nil {
			return nil, fmt.Errorf("%w: environment %q", ErrNotValid, env)
		}

		rng.env = env
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the typed app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if l == nil {
			return nil, fmt.Errorf("%w: nil logger", ErrNotValid)
		}

		rng.l = l
		l.Debug(fmt.Sprintf("using logger %T", l), nil)

		return nil, nil
	}
}

// WithResolver exposes the *req.Resolver to the typed app.
func WithResolver(rs *req.Resolver) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.resolver = rs
		return nil, nil
	}
}

// WithResponder constructs a followup option that, when called,
// exposes the *resp.Responder to the typed app.
func WithResponder(r *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			if r == nil {
				return fmt.Errorf("%w: nil responder", ErrNotValid)
			}

			rng.Responder = r
			rng.l.Debug("using responder", nil)

			return nil
		}, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes the *router.Router to the typed app, in lieu of the default one.
//
// The default middlewares are not applied to r.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			if r == nil {
				return fmt.Errorf("%w: nil router", ErrNotValid)
			}

			rng.Router = r
			rng.l.Debug(fmt.Sprintf("using router %T", r), nil)

			return nil
		}, nil
	}
}

// WithServer exposes the *http.Server to the typed app.
// Its Handler is replaced by the Ranger's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if s == nil {
			return nil, fmt.Errorf("%w: nil server", ErrNotValid)
		}

		rng.srv = s
		return nil, nil
	}
}
