package ranger

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/http/middleware"
	"github.com/xy-planning-network/typed/http/req"
	"github.com/xy-planning-network/typed/http/resp"
	"github.com/xy-planning-network/typed/http/router"
	"github.com/xy-planning-network/typed/logger"
	"golang.org/x/time/rate"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"
	defaultLogLvl  = logger.LogLevelInfo

	// Request body defaults
	maxBodyBytesEnvVar    = "MAX_BODY_BYTES"
	DefaultMaxBodyBytes   = 1 << 20
	formMaxMemoryEnvVar   = "FORM_MAX_MEMORY"
	DefaultFormMaxMemory  = 32 << 20
	rateLimitEnvVar       = "RATE_LIMIT"
	defaultRateLimit      = 5
	rateLimitBurstEnvVar  = "RATE_LIMIT_BURST"
	defaultRateLimitBurst = 20

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// defaultAppLogger constructs a [logger.Logger] configured for use in the application.
// If the SENTRY_DSN env var is set, the logger reports errors to Sentry.
func defaultAppLogger(env typed.Environment) logger.Logger {
	l := logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(envVarOrLogLevel(logLevelEnvVar, defaultLogLvl)),
	)
	l.Debug("setting up app logger", nil)

	return l
}

// defaultResolver constructs the [*req.Resolver] http.Handlers resolve request bodies with.
//
// Besides form and JSON bodies, it decodes YAML, MessagePack and BSON bodies.
func defaultResolver(l logger.Logger) *req.Resolver {
	maxMemory := typed.EnvVarOrInt64(formMaxMemoryEnvVar, DefaultFormMaxMemory)
	n := req.NewNegotiator(req.JSONCodec{}, req.YAMLCodec{}, req.MsgpackCodec{}, req.BSONCodec{}).
		Fallback(req.NewDefaultDecoder(maxMemory))

	return req.NewResolver(
		req.WithBodyDecoder(n),
		req.WithLogger(l),
		req.WithMaxMemory(maxMemory),
	)
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(l logger.Logger) *resp.Responder {
	return resp.NewResponder(resp.WithLogger(l))
}

// defaultMiddlewares constructs the [middleware.Adapter] applied to every request:
// rate limiting, request IDs, IP addresses, CORS for baseURL, request logging and body limits.
func defaultMiddlewares(baseURL *url.URL, l logger.Logger) []middleware.Adapter {
	vs := middleware.NewVisitorsWithLimit(
		rate.Limit(typed.EnvVarOrInt64(rateLimitEnvVar, defaultRateLimit)),
		int(typed.EnvVarOrInt64(rateLimitBurstEnvVar, defaultRateLimitBurst)),
	)

	var origin string
	if baseURL != nil {
		origin = baseURL.Scheme + "://" + baseURL.Host
	}

	return []middleware.Adapter{
		middleware.RateLimit(vs),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.CORS(origin),
		middleware.LogRequest(l),
		middleware.LimitBody(typed.EnvVarOrInt64(maxBodyBytesEnvVar, DefaultMaxBodyBytes)),
	}
}

// defaultRouter constructs a [*router.Router] to be used by the web server.
//
// Requests no Route matches are responded to with a JSON error by responder.
func defaultRouter(
	env typed.Environment,
	responder *resp.Responder,
	l logger.Logger,
	mws []middleware.Adapter,
) *router.Router {
	route := router.New(env, middleware.LogRequest(l))
	route.OnEveryRequest(mws...)
	route.HandleNotFound(func(wx http.ResponseWriter, rx *http.Request) {
		responder.Err(wx, rx, routeError{status: http.StatusNotFound, method: rx.Method, path: rx.URL.Path})
	})
	route.HandleMethodNotAllowed(func(wx http.ResponseWriter, rx *http.Request) {
		responder.Err(wx, rx, routeError{status: http.StatusMethodNotAllowed, method: rx.Method, path: rx.URL.Path})
	})

	return route
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := typed.EnvVarOrString(portEnvVar, DefaultPort)
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         typed.EnvVarOrString(hostEnvVar, DefaultHost) + port,
		IdleTimeout:  typed.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  typed.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: typed.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
