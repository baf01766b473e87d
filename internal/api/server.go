package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Anthonytesla02/AxelTycoon/internal/config"
	"github.com/Anthonytesla02/AxelTycoon/internal/game"
	"github.com/Anthonytesla02/AxelTycoon/internal/store"
)

type Server struct {
	cfg    config.APIConfig
	log    *slog.Logger
	engine *game.Engine
	games  store.Store
	mux    *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, engine *game.Engine, games store.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		log:    logger,
		engine: engine,
		games:  games,
		mux:    chi.NewRouter(),
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
	if s.cfg.RequestLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/games", s.handleCreateGame)
		r.Get("/games", s.handleListGames)
		r.Get("/games/{id}", s.handleGetGame)
		r.Get("/games/player/{name}", s.handleGetGameByPlayer)
		r.Post("/games/{id}/turn", s.handleTurn)
		r.Delete("/games/{id}", s.handleDeleteGame)
	})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PlayerName string `json:"playerName"`
		Seed       string `json:"seed"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	playerName := strings.TrimSpace(in.PlayerName)
	if playerName == "" {
		playerName = s.cfg.DefaultPlayer
	}

	state := s.engine.NewGame(playerName, strings.TrimSpace(in.Seed))
	rec, err := s.games.Create(r.Context(), playerName, state)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("game created", "id", rec.ID, "player", playerName, "seed", rec.Seed)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.games.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	rec, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGetGameByPlayer(w http.ResponseWriter, r *http.Request) {
	rec, err := s.games.GetByPlayer(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in struct {
		Action game.Action `json:"action"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.games.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	state := rec.GameData
	report, err := s.engine.ProcessTurn(r.Context(), &state, in.Action)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.games.Update(r.Context(), id, state)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("turn processed",
		"id", id,
		"turn", updated.Turn,
		"action", string(in.Action.Type),
		"applied", report.Player.Applied)
	writeJSON(w, http.StatusOK, map[string]any{"game": updated, "report": report})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrTurnConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrUnknownAction),
		errors.Is(err, game.ErrActionReserved),
		errors.Is(err, game.ErrMissingTarget),
		errors.Is(err, game.ErrNegativeAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
