package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/http/middleware"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to the handlers registered for them.
type Router struct {
	Env           typed.Environment
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
//
// logReq is applied to requests no Route matches;
// to log every other request, pass it to OnEveryRequest as well.
func New(env typed.Environment, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Router{logReq: logReq, Env: env, r: mux.NewRouter()}
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		handler,
		middleware.ReportPanic(r.Env),
		r.logReq,
	)
}

// HandleMethodNotAllowed sets the provided [http.HandlerFunc] as the function
// for when a registered Route matches the path of a request but not its method.
func (r *Router) HandleMethodNotAllowed(handler http.HandlerFunc) {
	r.r.MethodNotAllowedHandler = middleware.Chain(
		handler,
		middleware.ReportPanic(r.Env),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append([]middleware.Adapter{middleware.ReportPanic(r.Env)}, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(route.Handler, mws...)
		r.r.Handle(route.Path, handler).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/widgets
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: append([]middleware.Adapter(nil), r.everyReqStack...),
	}
}

// Vars retrieves the route variables matched for the request, e.g., {id} in /widgets/{id}.
func Vars(req *http.Request) map[string]string {
	return mux.Vars(req)
}
