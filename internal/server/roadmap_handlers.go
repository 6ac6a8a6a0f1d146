package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type roadmapSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       int    `json:"steps"`
}

func (s *Server) listRoadmaps(w http.ResponseWriter, _ *http.Request) {
	list := s.roadmaps.List()
	out := make([]roadmapSummary, 0, len(list))

	for _, r := range list {
		out = append(out, roadmapSummary{ID: r.ID, Title: r.Title, Description: r.Description, Steps: len(r.Steps)})
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getRoadmap(w http.ResponseWriter, r *http.Request) {
	rm, err := s.roadmaps.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "get roadmap", err)

		return
	}

	writeJSON(w, http.StatusOK, rm)
}
