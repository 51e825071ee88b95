package api

import (
	"net/http"

	"github.com/okian/pxpstats/internal/domain/types"
)

type gamesResponse struct {
	Games []types.Game `json:"games"`
	Count int          `json:"count"`
}

// handleGames handles GET /api/games.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.deps.Games(r.Context())
	if err != nil {
		s.fail(w, r, err, "", msgGamesFailed)
		return
	}
	writeJSON(w, http.StatusOK, gamesResponse{Games: games, Count: len(games)})
}

// handleGameDetail handles GET /api/games/{date}/{team}.
func (s *Server) handleGameDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.deps.GameDetail(r.Context(), pathParam(r, "date"), pathParam(r, "team"))
	if err != nil {
		s.fail(w, r, err, msgGameNotFound, msgGameDetailFailed)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
