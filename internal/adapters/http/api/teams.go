package api

import (
	"net/http"

	"github.com/okian/pxpstats/internal/domain/types"
)

type teamsResponse struct {
	Teams []string `json:"teams"`
}

type teamStatsResponse struct {
	Teams []types.TeamAggregate `json:"teams"`
	Count int                   `json:"count"`
}

// handleTeams handles GET /api/teams.
func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.deps.Teams(r.Context())
	if err != nil {
		s.fail(w, r, err, "", msgTeamsFailed)
		return
	}
	writeJSON(w, http.StatusOK, teamsResponse{Teams: teams})
}

// handleTeamStats handles GET /api/teams/stats.
func (s *Server) handleTeamStats(w http.ResponseWriter, r *http.Request) {
	teams, err := s.deps.TeamStats(r.Context())
	if err != nil {
		s.fail(w, r, err, "", msgTeamStatsFailed)
		return
	}
	writeJSON(w, http.StatusOK, teamStatsResponse{Teams: teams, Count: len(teams)})
}

// handleTeamDetail handles GET /api/teams/{team_name}.
func (s *Server) handleTeamDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.deps.TeamDetail(r.Context(), pathParam(r, "team_name"))
	if err != nil {
		s.fail(w, r, err, msgTeamNotFound, msgTeamDetailFailed)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleTeamAverages handles GET /api/teams/{team_name}/averages.
func (s *Server) handleTeamAverages(w http.ResponseWriter, r *http.Request) {
	avg, err := s.deps.TeamAverages(r.Context(), pathParam(r, "team_name"))
	if err != nil {
		s.fail(w, r, err, msgTeamNotFound, msgTeamAveragesFailed)
		return
	}
	writeJSON(w, http.StatusOK, avg)
}
