package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/domain/interfaces"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/usecase"
	"github.com/osint-lab/argus/pkg/utils/errutil"
	"github.com/osint-lab/argus/pkg/utils/safe"
)

// Server exposes the workbench view and its commands over HTTP. It is a thin
// controller: all state lives in the workbench, every mutation goes through
// it, and GET /api/v1/view returns the same snapshot a local caller would see.
type Server struct {
	router    *chi.Mux
	workbench *usecase.Workbench
	backend   interfaces.Backend
}

type Options func(*Server)

// WithBackendHealth wires the upstream backend into GET /healthz so the
// endpoint reports reachability of the whole chain, not just this process
func WithBackendHealth(backend interfaces.Backend) Options {
	return func(s *Server) {
		s.backend = backend
	}
}

func New(wb *usecase.Workbench, opts ...Options) (*Server, error) {
	if wb == nil {
		return nil, goerr.New("workbench is required")
	}

	r := chi.NewRouter()
	s := &Server{
		router:    r,
		workbench: wb,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/view", s.handleView)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/cases", s.handleCreateCase)
		r.Post("/cases/{caseID}/select", s.handleSelectCase)
		r.Post("/cases/{caseID}/actions/{action}", s.handleAction)
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.backend != nil {
		if err := s.backend.Health(r.Context()); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "backend unreachable"), http.StatusServiceUnavailable)
			return
		}
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.workbench.Snapshot())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.workbench.Refresh(r.Context()); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, r, http.StatusOK, s.workbench.Snapshot())
}

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var input model.CreateCaseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	created, err := s.workbench.CreateCase(r.Context(), input)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleSelectCase(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	if err := id.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	s.workbench.SelectCase(r.Context(), id)
	respondJSON(w, r, http.StatusOK, s.workbench.Snapshot())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "caseID"))
	if err := id.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	action, err := usecase.ParseStageAction(chi.URLParam(r, "action"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	// One action at a time; the busy flag is authoritative
	if s.workbench.Snapshot().Busy {
		errutil.HandleHTTP(r.Context(), w, goerr.New("another action is in progress"), http.StatusConflict)
		return
	}

	if err := s.workbench.RunAction(r.Context(), id, action); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadGateway)
		return
	}
	respondJSON(w, r, http.StatusOK, s.workbench.Snapshot())
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
