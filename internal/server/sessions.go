package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/highmark/consult-copilot/internal/pipeline"
)

// sessionEntry pairs a session with its lock. Sessions are single-operator
// conversations; the lock serializes concurrent requests for the same id.
type sessionEntry struct {
	mu      sync.Mutex
	session *pipeline.Session
}

type sessionRegistry struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{entries: make(map[uuid.UUID]*sessionEntry)}
}

func (r *sessionRegistry) add(session *pipeline.Session) *sessionEntry {
	entry := &sessionEntry{session: session}
	r.mu.Lock()
	r.entries[session.ID] = entry
	r.mu.Unlock()
	return entry
}

func (r *sessionRegistry) get(id uuid.UUID) (*sessionEntry, bool) {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()
	return entry, ok
}

// withSession resolves the {id} path value and runs fn with the session
// locked. Write errors are handled before fn runs.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(session *pipeline.Session)) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session id")
		return
	}

	entry, ok := s.sessions.get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := pipeline.NewSession(s.engines, s.recorder)
	s.sessions.add(session)
	s.jsonResponse(w, http.StatusCreated, session.View())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(session *pipeline.Session) {
		s.jsonResponse(w, http.StatusOK, session.View())
	})
}

// ProfileUpdateRequest is a partial profile edit. Only present fields are
// applied, matching the one-field-at-a-time mutation model of the intake
// form.
type ProfileUpdateRequest struct {
	Name            *string   `json:"name"`
	University      *string   `json:"university"`
	UniversityLevel *string   `json:"university_level"`
	MajorCategory   *string   `json:"major_category"`
	Major           *string   `json:"major"`
	Grade           *string   `json:"grade"`
	GraduationYear  *string   `json:"graduation_year"`
	TargetIndustry  *[]string `json:"target_industry"`
	TargetRole      *string   `json:"target_role"`
	TargetCity      *string   `json:"target_city"`
	ExpectedSalary  *string   `json:"expected_salary"`
	InternshipCount *string   `json:"internship_count"`
	Projects        *string   `json:"projects"`
	Certificates    *string   `json:"certificates"`
	GPARanking      *string   `json:"gpa_ranking"`
	EnglishLevel    *string   `json:"english_level"`
	Status          *string   `json:"status"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s.withSession(w, r, func(session *pipeline.Session) {
		if session.State() != pipeline.StateInput {
			s.errorResponse(w, http.StatusConflict, "Profile edits are only allowed in the input state")
			return
		}

		profile := session.Profile()
		setString := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		setString(&profile.Name, req.Name)
		setString(&profile.University, req.University)
		setString(&profile.UniversityLevel, req.UniversityLevel)
		setString(&profile.MajorCategory, req.MajorCategory)
		setString(&profile.Major, req.Major)
		setString(&profile.Grade, req.Grade)
		setString(&profile.GraduationYear, req.GraduationYear)
		setString(&profile.TargetRole, req.TargetRole)
		setString(&profile.TargetCity, req.TargetCity)
		setString(&profile.ExpectedSalary, req.ExpectedSalary)
		setString(&profile.InternshipCount, req.InternshipCount)
		setString(&profile.Projects, req.Projects)
		setString(&profile.Certificates, req.Certificates)
		setString(&profile.GPARanking, req.GPARanking)
		setString(&profile.EnglishLevel, req.EnglishLevel)
		setString(&profile.Status, req.Status)
		if req.TargetIndustry != nil {
			profile.TargetIndustry = *req.TargetIndustry
		}

		s.jsonResponse(w, http.StatusOK, session.View())
	})
}

// ResumeImportRequest carries a résumé document as base64.
type ResumeImportRequest struct {
	FileName string `json:"file_name" validate:"required"`
	MIMEType string `json:"mime_type" validate:"required"`
	Data     string `json:"data" validate:"required"`
}

func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	var req ResumeImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	document, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "data must be base64-encoded")
		return
	}

	s.withSession(w, r, func(session *pipeline.Session) {
		importErr := session.ImportResume(r.Context(), document, req.MIMEType, req.FileName)
		if errors.Is(importErr, pipeline.ErrInvalidState) {
			s.errorResponse(w, http.StatusConflict, "Résumé import is only allowed in the input state")
			return
		}

		// A degraded extraction still applied its placeholder patch; report
		// the view plus the degradation notice rather than an error status.
		resp := map[string]any{"session": session.View()}
		if importErr != nil {
			resp["warning"] = importErr.Error()
		}
		s.jsonResponse(w, http.StatusOK, resp)
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(session *pipeline.Session) {
		var fallbacks []pipeline.ProgressEvent
		err := session.Submit(r.Context(), func(event pipeline.ProgressEvent) {
			if event.Category == "fallback" {
				fallbacks = append(fallbacks, event)
			}
		})
		if err != nil {
			s.errorResponse(w, httpStatus(err), err.Error())
			return
		}

		resp := map[string]any{"session": session.View()}
		if len(fallbacks) > 0 {
			resp["warnings"] = fallbacks
		}
		s.jsonResponse(w, http.StatusOK, resp)
	})
}

func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session id")
		return
	}
	entry, ok := s.sessions.get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	session := entry.session

	submitErr := session.Submit(r.Context(), func(event pipeline.ProgressEvent) {
		sse.WriteEvent("progress", event) //nolint:errcheck
	})
	if submitErr != nil {
		sse.WriteError(submitErr.Error())
		return
	}

	sse.WriteEvent("result", session.View()) //nolint:errcheck
	sse.WriteComplete(session.ID.String(), string(session.State()))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(session *pipeline.Session) {
		session.Reset()
		s.jsonResponse(w, http.StatusOK, session.View())
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotImplemented, "Persistence is not configured")
		return
	}
	runs, err := s.store.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}
