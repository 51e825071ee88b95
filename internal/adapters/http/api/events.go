package api

import (
	"net/http"

	"github.com/okian/pxpstats/internal/domain/query"
)

// handleEvents handles GET /api/events?team=&player=&event=&limit=&offset=.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := s.deps.Page(q)
	if err != nil {
		s.fail(w, r, err, "", msgEventsFailed)
		return
	}

	filter := query.Filter{
		Team:   q.Get("team"),
		Player: q.Get("player"),
		Event:  q.Get("event"),
	}
	res, err := s.deps.Events(r.Context(), filter, page)
	if err != nil {
		s.fail(w, r, err, "", msgEventsFailed)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
