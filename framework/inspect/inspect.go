// Package inspect serves a read-only JSON view of a container: its types,
// aliases, created instances and dependency trees.
//
//	GET /container                  summary
//	GET /container/types            every registered type
//	GET /container/types/{type}     one type and its dependency tree
//	GET /container/aliases          the binding table
//	GET /container/instances        identifiers of created singletons
package inspect

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-autowire/framework/container"
	gohttp "github.com/km-arc/go-autowire/framework/http"
	"github.com/km-arc/go-autowire/framework/routing"
)

// Handler exposes one container over HTTP.
type Handler struct {
	app *container.Container
}

// New creates a Handler for app.
func New(app *container.Container) *Handler {
	return &Handler{app: app}
}

// Summary is the body of GET /container.
type Summary struct {
	ID        string `json:"id"`
	Types     int    `json:"types"`
	Instances int    `json:"instances"`
	Aliases   int    `json:"aliases"`
	Sealed    bool   `json:"sealed"`
}

// TypeDetail is the body of GET /container/types/{type}.
type TypeDetail struct {
	container.TypeInfo
	Tree  []string `json:"tree"`
	Error *Problem `json:"error,omitempty"`
}

// Problem describes a container error in a response body.
type Problem struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Chain   []string `json:"chain,omitempty"`
}

// Routes mounts the endpoints under /container. Responses reflect live
// container state and are never cached.
func (h *Handler) Routes(r *routing.Router) {
	r.Group(func(r *routing.Router) {
		r.Middleware(middleware.NoCache)
		r.Prefix("/container", func(r *routing.Router) {
			r.Get("/", h.summary)
			r.Get("/types", h.types)
			r.Get("/types/{type}", h.typeDetail)
			r.Get("/aliases", h.aliases)
			r.Get("/instances", h.instances)
		})
	})
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(Summary{
		ID:        h.app.ID(),
		Types:     len(h.app.Keys()),
		Instances: h.app.Size(),
		Aliases:   len(h.app.Aliases()),
		Sealed:    h.app.Sealed(),
	})
}

func (h *Handler) types(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(h.app.Graph())
}

// typeDetail looks a type up after alias resolution. Building its tree seals
// the container like any other resolution.
func (h *Handler) typeDetail(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)

	raw := routing.Param(req, "type")
	id := h.app.Aliases().Resolve(container.Normalize(raw))

	var detail *TypeDetail
	for _, info := range h.app.Graph() {
		if info.ID == id {
			detail = &TypeDetail{TypeInfo: info, Tree: []string{}}
			break
		}
	}
	if detail == nil {
		res.Error(http.StatusNotFound, "no type registered under "+raw, container.ErrCodeTypeNotFound.String())
		return
	}

	tree, err := h.app.Tree(id)
	if err != nil {
		detail.Error = problem(err)
	} else {
		detail.Tree = tree
	}
	res.Success(detail)
}

func (h *Handler) aliases(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(h.app.Aliases())
}

func (h *Handler) instances(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(h.app.Instances())
}

func problem(err error) *Problem {
	var cerr *container.Error
	if errors.As(err, &cerr) {
		return &Problem{Code: cerr.Code.String(), Message: cerr.Error(), Chain: cerr.Chain}
	}
	return &Problem{Code: container.ErrCodeUnknown.String(), Message: err.Error()}
}
