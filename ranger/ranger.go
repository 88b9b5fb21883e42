package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/http/req"
	"github.com/xy-planning-network/typed/http/resp"
	"github.com/xy-planning-network/typed/http/router"
	"github.com/xy-planning-network/typed/logger"
)

// A Ranger manages and exposes all components of a typed app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	ctx      context.Context
	env      typed.Environment
	l        logger.Logger
	resolver *req.Resolver
	srv      *http.Server
	url      *url.URL
}

// New constructs a Ranger from the provided options.
// Options passed into New are applied first;
// defaults then fill in every component those options did not configure.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Ranger under construction.
	// Some options require data from other options or the defaults.
	// These options, therefore, must delay configuring the *Ranger
	// until defaults configure the *Ranger first.
	// They return an OptFollowup to be called after the initial set of options are run.
	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	r.applyDefaults()

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	}

	if r.Router == nil {
		r.Router = defaultRouter(r.env, r.Responder, r.l, defaultMiddlewares(r.url, r.l))
	}

	r.srv.Handler = r.Router

	return r, nil
}

// applyDefaults configures each component of r not yet set.
func (r *Ranger) applyDefaults() {
	if r.env == "" {
		r.env = typed.EnvVarOrEnv(environmentEnvVar, typed.Development)
	}

	if r.l == nil {
		r.l = defaultAppLogger(r.env)
	}

	if r.url == nil {
		r.url = typed.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL)
	}

	if r.resolver == nil {
		r.resolver = defaultResolver(r.l)
	}

	if r.Responder == nil {
		r.Responder = defaultResponder(r.l)
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx)
	}
}

func (r *Ranger) EmitEnv() typed.Environment  { return r.env }
func (r *Ranger) EmitLogger() logger.Logger   { return r.l }
func (r *Ranger) EmitResolver() *req.Resolver { return r.resolver }
func (r *Ranger) EmitServer() *http.Server    { return r.srv }
func (r *Ranger) EmitURL() *url.URL           { return r.url }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
// - the context.Context set by WithContext being done
//
// If the web server cannot listen, Guide returns that error.
func (r *Ranger) Guide() error {
	parent := r.ctx
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	errs := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		err := r.srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), nil)
			errs <- err
			return
		}

		cancel()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
