// Package api exposes a running Wireworld board over HTTP and WebSocket.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"wireworld/internal/app"
	"wireworld/internal/store"
	"wireworld/internal/transport/websocket"
	"wireworld/pkg/mcell"
	"wireworld/pkg/sims/wireworld"

	"github.com/gorilla/mux"
)

const (
	maxPatternBytes = 32 << 20
	maxStepsPerCall = 10000
)

// Server represents the REST API server
type Server struct {
	session *Session
	hub     *websocket.Hub
	store   store.Store
	router  *mux.Router
}

// NewServer creates a new API server. hub and st may be nil; their routes are
// then not registered.
func NewServer(session *Session, hub *websocket.Hub, st store.Store) *Server {
	s := &Server{
		session: session,
		hub:     hub,
		store:   st,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/pattern", s.handleGetPattern).Methods("GET")
	api.HandleFunc("/pattern", s.handlePutPattern).Methods("PUT")
	api.HandleFunc("/step", s.handleStep).Methods("POST")
	api.HandleFunc("/start", s.handleStart).Methods("POST")
	api.HandleFunc("/stop", s.handleStop).Methods("POST")
	api.HandleFunc("/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/cells/{x:[0-9-]+}/{y:[0-9-]+}", s.handleGetCell).Methods("GET")
	api.HandleFunc("/cells/{x:[0-9-]+}/{y:[0-9-]+}", s.handleSetCell).Methods("PUT")

	if s.store != nil {
		api.HandleFunc("/patterns", s.handleListPatterns).Methods("GET")
		api.HandleFunc("/patterns", s.handleSavePattern).Methods("POST")
		api.HandleFunc("/patterns/{id}", s.handleGetStored).Methods("GET")
		api.HandleFunc("/patterns/{id}", s.handleDeleteStored).Methods("DELETE")
		api.HandleFunc("/patterns/{id}/load", s.handleLoadStored).Methods("POST")
	}

	if s.hub != nil {
		s.router.HandleFunc("/ws", s.handleWebSocket)
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, mcell.ErrFormat),
		errors.Is(err, wireworld.ErrOutOfRange),
		errors.Is(err, wireworld.ErrInvalidState),
		errors.Is(err, store.ErrInvalidID),
		errors.Is(err, store.ErrInvalidRecord):
		return http.StatusBadRequest
	case store.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.session.Status())
}

func (s *Server) handleGetPattern(w http.ResponseWriter, r *http.Request) {
	var text string
	err := s.session.Do(func(c *app.Controller) error {
		var err error
		text, err = c.Save()
		return err
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, text+"\n")
}

func (s *Server) handlePutPattern(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPatternBytes))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if err := s.session.Do(func(c *app.Controller) error { return c.Load(string(body)) }); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.session.Status())
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	n := 1
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > maxStepsPerCall {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("n must be between 1 and %d", maxStepsPerCall))
			return
		}
		n = parsed
	}
	s.session.Do(func(c *app.Controller) error {
		for i := 0; i < n; i++ {
			c.StepOnce()
		}
		return nil
	})
	respondJSON(w, http.StatusOK, s.session.Status())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.session.Do(func(c *app.Controller) error { c.Start(); return nil })
	respondJSON(w, http.StatusOK, s.session.Status())
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.session.Do(func(c *app.Controller) error { c.Stop(); return nil })
	respondJSON(w, http.StatusOK, s.session.Status())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.session.Do(func(c *app.Controller) error { c.Reset(); return nil })
	respondJSON(w, http.StatusOK, s.session.Status())
}

// cellRequest is the body of PUT /api/cells/{x}/{y}.
type cellRequest struct {
	State wireworld.State `json:"state"`
}

type cellResponse struct {
	X     int             `json:"x"`
	Y     int             `json:"y"`
	State wireworld.State `json:"state"`
}

func cellCoords(r *http.Request) (int, int, error) {
	vars := mux.Vars(r)
	x, err := strconv.Atoi(vars["x"])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate %q", vars["x"])
	}
	y, err := strconv.Atoi(vars["y"])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate %q", vars["y"])
	}
	return x, y, nil
}

func (s *Server) handleGetCell(w http.ResponseWriter, r *http.Request) {
	x, y, err := cellCoords(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var st wireworld.State
	err = s.session.Do(func(c *app.Controller) error {
		var err error
		st, err = c.Grid().Get(x, y)
		return err
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cellResponse{X: x, Y: y, State: st})
}

func (s *Server) handleSetCell(w http.ResponseWriter, r *http.Request) {
	x, y, err := cellCoords(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req cellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.session.Do(func(c *app.Controller) error { return c.SetCell(x, y, req.State) }); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cellResponse{X: x, Y: y, State: req.State})
}

func (s *Server) handleListPatterns(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(recs),
		"patterns": recs,
	})
}

func (s *Server) handleSavePattern(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	var text string
	err := s.session.Do(func(c *app.Controller) error {
		var err error
		text, err = c.Save()
		return err
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rec, err := s.store.Put(r.Context(), req.Name, text)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetStored(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteStored(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.store.Delete(r.Context(), id); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Pattern %s deleted", id),
	})
}

func (s *Server) handleLoadStored(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if err := s.session.Do(func(c *app.Controller) error { return c.Load(rec.Pattern) }); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.session.Status())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r, s.session.Snapshot())
}
