package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MJE43/haunted-slots-go/internal/slot"
	"github.com/MJE43/haunted-slots-go/internal/store"
)

type createSessionRequest struct {
	// SeedHex optionally seeds the session's RNG (hex, >= 32 bytes decoded)
	// so the whole session can be replayed during a dispute.
	SeedHex    string `json:"seed_hex,omitempty"`
	Volatility string `json:"volatility,omitempty"`
	RTPMode    string `json:"rtp_mode,omitempty"`
}

type sessionResponse struct {
	ID        string                        `json:"id"`
	CreatedAt time.Time                     `json:"created_at"`
	SeedHash  string                        `json:"seed_hash,omitempty"`
	Balance   decimal.Decimal               `json:"balance"`
	FreeSpins int                           `json:"free_spins"`
	Jackpots  map[slot.Tier]decimal.Decimal `json:"jackpots"`
}

type spinRequest struct {
	Bet decimal.Decimal `json:"bet"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, ErrTypeInvalidRequest, fmt.Sprintf("malformed request body: %v", err))
			return
		}
	}

	cfg := s.cfg
	if req.Volatility != "" {
		v, err := slot.ParseVolatility(req.Volatility)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, ErrTypeInvalidRequest, err.Error())
			return
		}
		cfg.Volatility = v
	}
	if req.RTPMode != "" {
		m, err := slot.ParseRTPMode(req.RTPMode)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, ErrTypeInvalidRequest, err.Error())
			return
		}
		cfg.RTPMode = m
	}

	var seed []byte
	if req.SeedHex != "" {
		var err error
		seed, err = hex.DecodeString(req.SeedHex)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, ErrTypeInvalidRequest, fmt.Sprintf("seed_hex: %v", err))
			return
		}
	}

	session, err := s.sessions.Create(cfg, seed)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrTypeInvalidRequest, err.Error())
		return
	}
	s.logger.Printf("session %s created (seed_hash=%q volatility=%s rtp=%s)",
		session.ID, session.SeedHash, cfg.Volatility, cfg.RTPMode)

	writeJSON(w, http.StatusCreated, s.sessionResponse(session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromURL(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(session))
}

func (s *Server) handleSpin(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromURL(w, r)
	if !ok {
		return
	}

	var req spinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrTypeInvalidRequest, fmt.Sprintf("malformed request body: %v", err))
		return
	}

	outcome, idx, err := session.Spin(req.Bet)
	if err != nil {
		var invalid *slot.InvalidBetError
		if errors.As(err, &invalid) {
			writeError(w, r, http.StatusBadRequest, ErrTypeInvalidBet, invalid.Error())
			return
		}
		s.logger.Printf("session %s spin failed: %v", session.ID, err)
		writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "spin failed")
		return
	}

	s.journalSpin(r.Context(), session, idx, outcome)
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleSessionSpins(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromURL(w, r)
	if !ok {
		return
	}
	if s.journal == nil {
		writeError(w, r, http.StatusNotFound, ErrTypeNotFound, "journaling is disabled")
		return
	}
	records, err := s.journal.SessionSpins(r.Context(), session.ID.String())
	if err != nil {
		s.logger.Printf("session %s journal query failed: %v", session.ID, err)
		writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "journal query failed")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"uptime":        time.Since(s.startTime).String(),
		"go_version":    runtime.Version(),
		"sessions_live": s.sessions.Count(),
		"journal":       s.journal != nil,
	})
}

func (s *Server) sessionFromURL(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrTypeInvalidRequest, "malformed session id")
		return nil, false
	}
	session, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, ErrTypeNotFound, "unknown session")
		return nil, false
	}
	return session, true
}

func (s *Server) sessionResponse(session *Session) sessionResponse {
	balance, freeSpins, jackpots := session.State()
	return sessionResponse{
		ID:        session.ID.String(),
		CreatedAt: session.CreatedAt,
		SeedHash:  session.SeedHash,
		Balance:   balance,
		FreeSpins: freeSpins,
		Jackpots:  jackpots,
	}
}

// journalSpin appends the outcome to the audit log. Journal failures are
// logged, not surfaced: the spin has already happened and its result stands.
func (s *Server) journalSpin(ctx context.Context, session *Session, idx int64, outcome *slot.SpinOutcome) {
	if s.journal == nil {
		return
	}
	payload, err := json.Marshal(outcome)
	if err != nil {
		s.logger.Printf("session %s spin %d: marshal outcome: %v", session.ID, idx, err)
		return
	}
	rec := &store.SpinRecord{
		SessionID: session.ID.String(),
		SeedHash:  session.SeedHash,
		SpinIndex: idx,
		Bet:       outcome.Bet.String(),
		FreeSpin:  outcome.FreeSpin,
		TotalWin:  outcome.TotalWin.String(),
		Balance:   outcome.Balance.String(),
		Outcome:   payload,
	}
	if err := s.journal.Record(ctx, rec); err != nil {
		s.logger.Printf("session %s spin %d: journal: %v", session.ID, idx, err)
	}
}
