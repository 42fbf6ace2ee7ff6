// Package server is a small implementation of the remote todo service, used by the
// serve command and as a fixture for client tests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"todoboard/pkg/api"
	"todoboard/pkg/database"
	"todoboard/pkg/todo"
	"todoboard/pkg/utils"
)

// Server serves the todo resource from a Store
type Server struct {
	store   database.Store
	token   string
	decoder *schema.Decoder
	mux     *http.ServeMux
}

type Option func(*Server)

// WithToken requires every request to carry "Authorization: Bearer <token>"
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

func New(store database.Store, opts ...Option) *Server {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	s := &Server{
		store:   store,
		decoder: decoder,
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	p := api.ResourcePath
	s.mux.HandleFunc("GET "+p, s.handleList)
	s.mux.HandleFunc("GET "+p+"/{id}", s.handleGet)
	s.mux.HandleFunc("POST "+p, s.handleCreate)
	s.mux.HandleFunc("PUT "+p+"/{id}", s.handleUpdate)
	s.mux.HandleFunc("DELETE "+p+"/{id}", s.handleDelete)
	return s
}

// Handler returns the routed handler wrapped in auth and request logging
func (s *Server) Handler() http.Handler {
	return logRequests(s.authorize(s.mux))
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		utils.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) authorize(next http.Handler) http.Handler {
	if s.token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var opts api.ListOptions
	if err := s.decoder.Decode(&opts, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if opts.Limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must not be negative")
		return
	}

	items, err := s.store.List(r.Context(), database.Query{
		Status: database.StatusFilterFor(opts.IsComplete),
		Limit:  opts.Limit,
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo.Envelope[[]todo.Item]{Data: items})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo.Envelope[todo.Item]{Data: item})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req todo.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := todo.ValidateCreate(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.store.Create(r.Context(), req)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo.Envelope[todo.Item]{Data: item})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req todo.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Completion is one-way
	if !req.IsComplete {
		writeError(w, http.StatusBadRequest, "isComplete can only be set to true")
		return
	}

	item, err := s.store.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo.Envelope[todo.Item]{Data: item})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.Warn("store error", "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

type errorBody struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Warn("encode response", "err", err)
	}
}
