// Package httpapi serves a read-only HTTP view of the ledger for
// dashboards, next to the health check and Prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/logging"
	"github.com/dmitrijs2005/fitmint/internal/server/engine"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/holiman/uint256"
)

// Ledger is the read side of the engine.
type Ledger interface {
	GetUserProfile(ctx context.Context, account string) (*models.UserProfile, error)
	ClaimStatus(ctx context.Context, account string) (*engine.ClaimStatus, error)
	GetBalance(ctx context.Context, account string) (*uint256.Int, error)
	GetChallengeDetails(ctx context.Context, id uint64) (*models.ChallengeDetails, error)
	GetGlobalState(ctx context.Context) (*models.GlobalState, error)
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]models.Event, error)
}

type Server struct {
	address string
	ledger  Ledger
	metrics http.Handler
	logger  logging.Logger
	router  http.Handler
}

// New builds the router. metrics may be nil.
func New(address string, ledger Ledger, metrics http.Handler, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop{}
	}
	s := &Server{
		address: address,
		ledger:  ledger,
		metrics: metrics,
		logger:  logger.With("module", "http_server"),
	}
	s.router = s.buildRouter()
	return s
}

// Handler exposes the configured router.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))

	r.Get("/healthz", s.health)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/state", s.getState)
		v1.Get("/users/{account}", s.getUser)
		v1.Get("/challenges/{id}", s.getChallenge)
		v1.Get("/events", s.listEvents)
	})
	return r
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ledger.GetGlobalState(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	g, err := s.ledger.GetGlobalState(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// userView is a profile joined with its balance and claim eligibility.
type userView struct {
	Profile *models.UserProfile `json:"profile"`
	Balance *uint256.Int        `json:"balance"`
	Claim   *engine.ClaimStatus `json:"claim"`
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account := chi.URLParam(r, "account")

	p, err := s.ledger.GetUserProfile(ctx, account)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bal, err := s.ledger.GetBalance(ctx, account)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	st, err := s.ledger.ClaimStatus(ctx, account)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	// the identity token is not public
	view := *p
	view.IdentityToken = nil
	writeJSON(w, http.StatusOK, userView{Profile: &view, Balance: bal, Claim: st})
}

func (s *Server) getChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid challenge id")
		return
	}
	d, err := s.ledger.GetChallengeDetails(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var after uint64
	if v := q.Get("after"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid after")
			return
		}
		after = parsed
	}
	limit := 0
	if v := q.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	events, err := s.ledger.ListEvents(r.Context(), after, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrChallengeNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorNotBootstrapped):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
