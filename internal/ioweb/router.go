// Package ioweb serves the catalog as a read-only JSON API.
package ioweb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/gnfmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type handler struct {
	q   bosdb.Query
	enc gnfmt.GNjson
}

// NewRouter creates the HTTP API over the query façade. All routes are
// GET only.
func NewRouter(q bosdb.Query) http.Handler {
	h := &handler{q: q}
	r := chi.NewRouter()
	r.Use(requestID, middleware.RequestID, logRequests, middleware.Recoverer)

	r.Get("/ping", h.ping)
	r.Get("/categories", h.categories)
	r.Get("/items/{categoryId}", h.items)
	r.Get("/vocabulary/{categoryId}", h.vocabulary)
	r.Get("/recipes/{categoryId}", h.recipes)
	r.Get("/references", h.references)

	return r
}

func (h *handler) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("pong"))
}

func (h *handler) categories(w http.ResponseWriter, r *http.Request) {
	res, err := h.q.GetCategories(r.Context())
	h.respond(w, r, res, err)
}

func (h *handler) items(w http.ResponseWriter, r *http.Request) {
	byCategory(h, w, r, h.q.GetItemsByCategory)
}

func (h *handler) vocabulary(w http.ResponseWriter, r *http.Request) {
	byCategory(h, w, r, h.q.GetVocabularyByCategory)
}

func (h *handler) recipes(w http.ResponseWriter, r *http.Request) {
	byCategory(h, w, r, h.q.GetRecipesByCategory)
}

func (h *handler) references(w http.ResponseWriter, r *http.Request) {
	res, err := h.q.GetAllReferenceInfo(r.Context())
	h.respond(w, r, res, err)
}

// byCategory parses the category id from the path and runs a query.
// A category that does not exist is served as an empty list.
func byCategory[T any](
	h *handler,
	w http.ResponseWriter,
	r *http.Request,
	query func(context.Context, int64) ([]T, error),
) {
	// only non-negative integers match a category route
	id, err := strconv.ParseInt(chi.URLParam(r, "categoryId"), 10, 64)
	if err != nil || id < 0 {
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}

	res, err := query(r.Context(), id)
	if catalog.Is(err, errcode.NotFoundError) {
		res, err = []T{}, nil
	}
	h.respond(w, r, res, err)
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *handler) respond(
	w http.ResponseWriter,
	r *http.Request,
	payload any,
	err error,
) {
	if err != nil {
		slog.Error("Query failed",
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r.Context()),
			"error", err,
		)
		h.writeJSON(w, http.StatusInternalServerError,
			errorBody{Error: errorText(err)})
		return
	}
	h.writeJSON(w, http.StatusOK, payload)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	bs, err := h.enc.Encode(payload)
	if err != nil {
		slog.Error("Cannot encode response", "error", err)
		status = http.StatusInternalServerError
		bs = []byte(`{"error":"cannot encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bs)
}

// errorText hides storage details from API clients.
func errorText(err error) string {
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	return "internal error"
}
