package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/logger"
	"github.com/xy-planning-network/typed/ranger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, *logger.LogContext) {}
func (nopLogger) Error(string, *logger.LogContext) {}
func (nopLogger) Fatal(string, *logger.LogContext) {}
func (nopLogger) Info(string, *logger.LogContext)  {}
func (nopLogger) Warn(string, *logger.LogContext)  {}
func (nopLogger) LogLevel() logger.LogLevel        { return logger.LogLevelDebug }

type errBody struct {
	Error            string `json:"error"`
	Status           int    `json:"status"`
	ValidationErrors []struct {
		Field string `json:"field"`
		Rule  string `json:"rule"`
	} `json:"validationErrors"`
}

func newServer(t *testing.T) http.Handler {
	t.Helper()

	rng, err := ranger.New(
		ranger.WithEnvironment(typed.Testing),
		ranger.WithLogger(nopLogger{}),
		ranger.WithServer(&http.Server{Addr: "127.0.0.1:0"}),
	)
	require.Nil(t, err)

	rng.HandleRoutes(newHandler(rng).routes())

	return rng
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	return w
}

func decodeWidget(t *testing.T, w *httptest.ResponseRecorder) Widget {
	t.Helper()

	var body struct {
		Data Widget `json:"data"`
	}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body.Data
}

func TestCreateWidget(t *testing.T) {
	tcs := []struct {
		name        string
		contentType string
		body        string
	}{
		{
			"JSON",
			"application/json",
			`{"name":"spinner","kind":"gizmo","min_parts":1,"max_parts":3,"tags":["blue"]}`,
		},
		{
			"Form",
			"application/x-www-form-urlencoded",
			url.Values{
				"name":      {"spinner"},
				"kind":      {"gizmo"},
				"min_parts": {"1"},
				"max_parts": {"3"},
				"tags":      {"blue"},
			}.Encode(),
		},
		{
			"YAML",
			"application/yaml",
			"name: spinner\nkind: gizmo\nmin_parts: 1\nmax_parts: 3\ntags: [blue]\n",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			srv := newServer(t)

			// Act
			w := do(t, srv, http.MethodPost, "/widgets", tc.contentType, tc.body)

			// Assert
			require.Equal(t, http.StatusCreated, w.Code)
			require.Equal(t, "/widgets/1", w.Header().Get("Location"))

			wgt := decodeWidget(t, w)
			require.Equal(t, 1, wgt.ID)
			require.Equal(t, "spinner", wgt.Name)
			require.Equal(t, Gizmo, wgt.Kind)
			require.Equal(t, 1, wgt.MinParts)
			require.Equal(t, 3, wgt.MaxParts)
			require.Equal(t, []string{"blue"}, wgt.Tags)
		})
	}
}

func TestCreateWidgetInvalid(t *testing.T) {
	tcs := []struct {
		name  string
		body  string
		field string
	}{
		{"Missing-Name", `{"kind":"gizmo"}`, "name"},
		{"Bad-Kind", `{"name":"spinner","kind":"doohickey"}`, "kind"},
		{"Parts", `{"name":"spinner","kind":"gizmo","min_parts":4,"max_parts":2}`, "min_parts"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			srv := newServer(t)

			// Act
			w := do(t, srv, http.MethodPost, "/widgets", "application/json", tc.body)

			// Assert
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var body errBody
			require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, http.StatusUnprocessableEntity, body.Status)
			require.Len(t, body.ValidationErrors, 1)
			require.Equal(t, tc.field, body.ValidationErrors[0].Field)
		})
	}
}

func TestCreateWidgetUnsupported(t *testing.T) {
	// Arrange
	srv := newServer(t)

	// Act
	w := do(t, srv, http.MethodPost, "/widgets", "text/plain", "spinner")

	// Assert
	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestGetWidget(t *testing.T) {
	// Arrange
	srv := newServer(t)
	w := do(t, srv, http.MethodPost, "/widgets", "application/json", `{"name":"spinner","kind":"gadget"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Act
	w = do(t, srv, http.MethodGet, "/widgets/1", "", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "spinner", decodeWidget(t, w).Name)

	// Act
	w = do(t, srv, http.MethodGet, "/widgets/2", "", "")

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)

	var body errBody
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "no widget: 2", body.Error)
}

func TestListWidgets(t *testing.T) {
	// Arrange
	srv := newServer(t)
	for _, name := range []string{"a", "b"} {
		w := do(t, srv, http.MethodPost, "/widgets", "application/json", `{"name":"`+name+`","kind":"gadget"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Act
	w := do(t, srv, http.MethodGet, "/widgets", "", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []Widget `json:"data"`
	}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	require.Equal(t, "a", body.Data[0].Name)
	require.Equal(t, "b", body.Data[1].Name)
}

func TestTagWidget(t *testing.T) {
	// Arrange
	srv := newServer(t)
	w := do(t, srv, http.MethodPost, "/widgets", "application/json", `{"name":"spinner","kind":"gadget"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Act
	w = do(t, srv, http.MethodPut, "/widgets/1/tags", "application/json", `["red","green"]`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"red", "green"}, decodeWidget(t, w).Tags)

	// Act
	w = do(t, srv, http.MethodPut, "/widgets/1/tags", "application/json", `["red",7]`)

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Act
	w = do(t, srv, http.MethodPut, "/widgets/1/tags", "application/json", `{"tags":["red"]}`)

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestArchiveWidget(t *testing.T) {
	// Arrange
	srv := newServer(t)
	w := do(t, srv, http.MethodPost, "/widgets", "application/json", `{"name":"spinner","kind":"gadget"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Act
	w = do(t, srv, http.MethodPost, "/widgets/1/archive", "", "")

	// Assert
	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	// Act
	w = do(t, srv, http.MethodPost, "/widgets/1/archive", "application/json", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decodeWidget(t, w).Archived)

	// Act
	w = do(t, srv, http.MethodPost, "/widgets/1/archive", "application/json", `{"now":true}`)

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
