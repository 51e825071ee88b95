package api

import (
	"net/http"

	"github.com/okian/pxpstats/internal/domain/types"
)

type playersResponse struct {
	Players []types.PlayerAggregate `json:"players"`
	Count   int                     `json:"count"`
}

// handlePlayers handles GET /api/players?team=.
func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.deps.Players(r.Context(), r.URL.Query().Get("team"))
	if err != nil {
		s.fail(w, r, err, "", msgPlayersFailed)
		return
	}
	writeJSON(w, http.StatusOK, playersResponse{Players: players, Count: len(players)})
}

// handlePlayerDetail handles GET /api/players/{player_name}.
func (s *Server) handlePlayerDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.deps.PlayerDetail(r.Context(), pathParam(r, "player_name"))
	if err != nil {
		s.fail(w, r, err, msgPlayerNotFound, msgPlayerDetailFailed)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
