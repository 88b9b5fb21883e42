/*

Package main provides a toy example use of typed's http stack:
a widget catalog resolving JSON, form, YAML, MessagePack and BSON request bodies.

*/
package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/http/req"
	. "github.com/xy-planning-network/typed/http/resp"
	"github.com/xy-planning-network/typed/http/router"
	"github.com/xy-planning-network/typed/ranger"
)

// A WidgetKind is the kind of thing a widget is.
type WidgetKind string

const (
	Gadget   WidgetKind = "gadget"
	Gizmo    WidgetKind = "gizmo"
	Sprocket WidgetKind = "sprocket"
)

func (k WidgetKind) String() string { return string(k) }

func (k WidgetKind) Valid() error {
	switch k {
	case Gadget, Gizmo, Sprocket:
		return nil
	default:
		return fmt.Errorf("%w: %q is not a WidgetKind", typed.ErrNotValid, string(k))
	}
}

// CreateWidget is the body of a request creating a widget.
type CreateWidget struct {
	Name     string     `json:"name" validate:"required,max=64"`
	Kind     WidgetKind `json:"kind" validate:"enum"`
	MinParts int        `json:"min_parts" validate:"gte=0"`
	MaxParts int        `json:"max_parts" validate:"gte=0"`
	Tags     []string   `json:"tags"`
}

// Validate checks what "validate" struct tags cannot.
func (c CreateWidget) Validate() error {
	if c.MinParts > c.MaxParts {
		return req.ValidationErrors{{Field: "min_parts", Got: c.MinParts, Rule: "lte max_parts"}}
	}

	return nil
}

// A Widget is a created CreateWidget.
type Widget struct {
	ID int `json:"id"`
	CreateWidget
	Archived bool `json:"archived"`
}

var errNoWidget = errors.New("no widget")

// Handler shares the initialized Ranger across all example handlers.
type Handler struct {
	*ranger.Ranger

	mu      sync.Mutex
	nextID  int
	widgets map[int]*Widget
}

func newHandler(rng *ranger.Ranger) *Handler {
	return &Handler{Ranger: rng, nextID: 1, widgets: make(map[int]*Widget)}
}

func (h *Handler) routes() []router.Route {
	return []router.Route{
		{Path: "/widgets", Method: http.MethodGet, Handler: h.list},
		{Path: "/widgets", Method: http.MethodPost, Handler: h.create},
		{Path: "/widgets/{id:[0-9]+}", Method: http.MethodGet, Handler: h.get},
		{Path: "/widgets/{id:[0-9]+}/tags", Method: http.MethodPut, Handler: h.tag},
		{Path: "/widgets/{id:[0-9]+}/archive", Method: http.MethodPost, Handler: h.archive},
	}
}

// archive expects an empty body.
func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	if _, err := req.ResolveRequest[req.None](h.EmitResolver(), r); err != nil {
		h.Err(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	wgt, err := h.find(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	wgt.Archived = true
	h.Json(w, r, Data(wgt))
}

// create resolves a CreateWidget from any supported body.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	body, err := req.ResolveRequest[CreateWidget](h.EmitResolver(), r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	wgt := &Widget{ID: h.nextID, CreateWidget: body}
	h.widgets[wgt.ID] = wgt
	h.nextID++

	h.Json(w, r, Code(http.StatusCreated), Header("Location", fmt.Sprintf("/widgets/%d", wgt.ID)), Data(wgt))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	wgt, err := h.find(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	h.Json(w, r, Data(wgt))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := make([]*Widget, 0, len(h.widgets))
	for _, wgt := range h.widgets {
		list = append(list, wgt)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	h.Json(w, r, Data(list))
}

// tag resolves a bare list of tags, replacing those on the widget.
func (h *Handler) tag(w http.ResponseWriter, r *http.Request) {
	tags, err := req.ResolveRequest[[]any](h.EmitResolver(), r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	strs := make([]string, 0, len(tags))
	for i, t := range tags {
		s, ok := t.(string)
		if !ok {
			h.Err(w, r, &req.Error{
				Status: http.StatusUnprocessableEntity,
				Err:    req.ValidationErrors{{Field: strconv.Itoa(i), Got: t, Rule: "must be string"}},
			})
			return
		}
		strs = append(strs, s)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	wgt, err := h.find(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	wgt.Tags = strs
	h.Json(w, r, Data(wgt))
}

// find retrieves the widget for the {id} in r's path.
// Callers must hold h.mu.
func (h *Handler) find(r *http.Request) (*Widget, error) {
	id, _ := strconv.Atoi(router.Vars(r)["id"])
	wgt, ok := h.widgets[id]
	if !ok {
		return nil, notFound{id: id}
	}

	return wgt, nil
}

type notFound struct{ id int }

func (e notFound) Error() string   { return fmt.Sprintf("%s: %d", errNoWidget, e.id) }
func (e notFound) StatusCode() int { return http.StatusNotFound }
func (e notFound) Unwrap() error   { return errNoWidget }

func main() {
	rng, err := ranger.New()
	if err != nil {
		log.Fatal(err)
	}

	h := newHandler(rng)
	rng.HandleRoutes(h.routes())

	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}
}
