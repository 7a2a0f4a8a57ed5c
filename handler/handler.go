// Package handler provides the HTTP handlers for the inventory API.
package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"github.com/stevemurr/inventory-server/item"
	"github.com/stevemurr/inventory-server/store"
)

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 1 << 20

var errBodyTooLarge = errors.New("request body too large")

// Handler holds the server dependencies and registers routes.
type Handler struct {
	store store.Store
	mux   *http.ServeMux
}

// New creates a Handler and wires up all routes.
func New(s store.Store) *Handler {
	h := &Handler{store: s, mux: http.NewServeMux()}
	h.routes()
	return h
}

// ServeHTTP makes Handler an http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.mux.HandleFunc("GET /items", h.listItems)
	h.mux.HandleFunc("POST /items", h.createItem)
	h.mux.HandleFunc("GET /items/{id}", h.getItem)
	h.mux.HandleFunc("PUT /items/{id}", h.updateItem)
	h.mux.HandleFunc("DELETE /items/{id}", h.deleteItem)

	// GET patterns also match HEAD; the API answers HEAD like any other
	// unsupported verb.
	h.mux.HandleFunc("HEAD /items", h.methodNotAllowed)
	h.mux.HandleFunc("HEAD /items/{id}", h.methodNotAllowed)

	// Anything else under /items is a verb/path the API does not support.
	h.mux.HandleFunc("/items", h.methodNotAllowed)
	h.mux.HandleFunc("/items/", h.methodNotAllowed)

	h.mux.HandleFunc("/", h.notFound)
}

// ---------- helpers ----------

// envelope is the response body of every API call.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: msg, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

// readBody buffers the whole request body before anything parses it.
func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxBodyBytes {
		return nil, errBodyTooLarge
	}
	return body, nil
}

// readPayload reads and decodes the body, writing a 400 when that fails.
func readPayload(w http.ResponseWriter, r *http.Request) (item.Payload, bool) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	p, err := item.DecodePayload(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return nil, false
	}
	return p, true
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	switch rest := strings.TrimPrefix(r.URL.Path, "/items"); {
	case rest == "":
		w.Header().Set("Allow", "GET, POST")
	case len(rest) > 1 && !strings.Contains(rest[1:], "/"):
		w.Header().Set("Allow", "GET, PUT, DELETE")
	}
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}
