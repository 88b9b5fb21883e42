package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/http/middleware"
	"github.com/xy-planning-network/typed/http/router"
)

func header(key, val string) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, val)
			h.ServeHTTP(w, r)
		})
	}
}

func TestRouterHandleRoutes(t *testing.T) {
	// Arrange
	rt := router.New(typed.Testing, nil)
	rt.OnEveryRequest(header("X-Order", "every"))
	rt.HandleRoutes(
		[]router.Route{
			{
				Path:        "/widgets/{id}",
				Method:      http.MethodGet,
				Middlewares: []middleware.Adapter{header("X-Order", "route")},
				Handler: func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, router.Vars(r)["id"])
				},
			},
		},
		header("X-Order", "group"),
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/widgets/42", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "42", w.Body.String())
	require.Equal(t, []string{"every", "group", "route"}, w.Header().Values("X-Order"))
}

func TestRouterHandleNotFound(t *testing.T) {
	// Arrange
	var logged bool
	logReq := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logged = true
			h.ServeHTTP(w, r)
		})
	}

	rt := router.New(typed.Testing, logReq)
	rt.Handle(router.Route{Path: "/widgets", Method: http.MethodPost, Handler: func(http.ResponseWriter, *http.Request) {}})
	rt.HandleNotFound(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	rt.HandleMethodNotAllowed(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusConflict) })

	// Act
	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.True(t, logged)

	// Act
	w = httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	// Assert
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRouterSubrouter(t *testing.T) {
	// Arrange
	rt := router.New(typed.Testing, nil)
	rt.OnEveryRequest(header("X-Order", "every"))

	api := rt.Subrouter("/api/v1")
	api.OnEveryRequest(header("X-Order", "api"))
	api.Handle(router.Route{
		Path:    "/widgets",
		Method:  http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) {},
	})

	rt.Handle(router.Route{
		Path:    "/health",
		Method:  http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) {},
	})

	// Act
	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/widgets", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"every", "api"}, w.Header().Values("X-Order"))

	// Act
	w = httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	// Assert
	require.Equal(t, []string{"every"}, w.Header().Values("X-Order"))
}

func TestRouterRecoversPanics(t *testing.T) {
	// Arrange
	rt := router.New(typed.Testing, nil)
	rt.Handle(router.Route{
		Path:    "/panic",
		Method:  http.MethodGet,
		Handler: func(http.ResponseWriter, *http.Request) { panic("oops") },
	})

	w := httptest.NewRecorder()

	// Act + Assert
	require.NotPanics(t, func() { rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil)) })
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
