// Package api exposes a read-only HTTP view of the economy for
// dashboards and the coinctl tool. All writes stay on the chat side.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"coinbot/internal/adminlist"
	"coinbot/internal/economy"
	"coinbot/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	log      *slog.Logger
	svc      *economy.Service
	admins   *adminlist.List
	topLimit int
	mux      *chi.Mux
}

func New(logger *slog.Logger, svc *economy.Service, admins *adminlist.List, topLimit int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if topLimit <= 0 {
		topLimit = 10
	}
	s := &Server{
		log:      logger,
		svc:      svc,
		admins:   admins,
		topLimit: topLimit,
		mux:      chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/top", s.handleTop)
		r.Get("/instruments", s.handleInstruments)
		r.Get("/instruments/{symbol}", s.handleInstrumentDetail)
		r.Get("/instruments/{symbol}/history", s.handleInstrumentHistory)
		r.Get("/accounts/{id}", s.handleAccount)
		r.Get("/accounts/{id}/portfolio", s.handlePortfolio)
		r.Post("/admin/reload-admins", s.handleReloadAdmins)
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := s.topLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	rows, err := s.svc.Top(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) handleInstruments(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.Instruments(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"instruments": out})
}

func (s *Server) handleInstrumentDetail(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	out, err := s.svc.InstrumentBySymbol(r.Context(), symbol)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInstrumentHistory(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	page, err := s.svc.History(r.Context(), symbol, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	acct, err := s.svc.AccountByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	out, err := s.svc.Portfolio(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReloadAdmins(w http.ResponseWriter, r *http.Request) {
	if err := s.admins.Reload(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("admin list reloaded", "count", s.admins.Len())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": s.admins.Len()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, economy.ErrNotRegistered), errors.Is(err, economy.ErrTargetNotFound),
		errors.Is(err, economy.ErrInstrumentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, economy.ErrInvalidBet), errors.Is(err, economy.ErrInvalidAmount),
		errors.Is(err, economy.ErrSelfTransfer):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, economy.ErrInsufficientFunds), errors.Is(err, economy.ErrInsufficientHoldings):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, economy.ErrTxConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
