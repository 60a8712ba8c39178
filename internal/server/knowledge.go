package server

import (
	"net/http"

	"github.com/highmark/consult-copilot/internal/knowledge"
)

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"items": knowledge.Catalog()})
}

func (s *Server) handleGetObjections(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"scripts": knowledge.ObjectionScripts()})
}

// handleGetFormOptions serves the fixed vocabularies the intake form renders.
func (s *Server) handleGetFormOptions(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"target_industries": knowledge.TargetIndustries(),
		"university_levels": knowledge.UniversityLevels(),
		"grades":            knowledge.Grades(),
		"major_categories":  knowledge.MajorCategories(),
	})
}
