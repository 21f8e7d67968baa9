package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/latateni/latateni-server/internal/domain"
	"github.com/latateni/latateni-server/internal/http/response"
	"github.com/latateni/latateni-server/internal/service"
)

// draftTheoryRequest asks the AI assistant for an article draft. Nothing is
// persisted; the coach edits and saves the draft explicitly.
type draftTheoryRequest struct {
	Topic string   `json:"topic"`
	Tags  []string `json:"tags,omitempty"`
}

func (s *Server) handleCreateTheory(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	var req service.CreateTheoryRequest
	if !decodeBody(w, r, &req, s) {
		return
	}

	article, err := s.theoryService.Create(r.Context(), claims.CoachID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, article, s.logger)
}

func (s *Server) handleDraftTheory(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	var req draftTheoryRequest
	if !decodeBody(w, r, &req, s) {
		return
	}

	draft, err := s.theoryService.Draft(r.Context(), claims.CoachID, req.Topic, req.Tags)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"draft": draft}, s.logger)
}

// handleListTheory returns the coach's theory articles. ?tag= filters the
// live cache by exact tag, ?q= by substring match; the two combine.
func (s *Server) handleListTheory(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	query := r.URL.Query().Get("q")
	tag := r.URL.Query().Get("tag")

	if query != "" || tag != "" {
		session := s.liveSession(claims)
		var keep func(*domain.TheoryArticle) bool
		if tag != "" {
			keep = func(a *domain.TheoryArticle) bool { return a.HasTag(tag) }
		}
		response.Success(w, session.Theory.FilterFunc(query, keep), s.logger)
		return
	}

	articles, err := s.theoryService.List(r.Context(), claims.CoachID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, articles, s.logger)
}

// handleTheoryTags returns the sorted union of tags across the coach's
// articles, for filter dropdowns.
func (s *Server) handleTheoryTags(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	session := s.liveSession(claims)
	response.Success(w, session.TheoryTags(), s.logger)
}

func (s *Server) handleGetTheory(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	article, err := s.theoryService.Get(r.Context(), claims.CoachID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, article, s.logger)
}

func (s *Server) handleDeleteTheory(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	if err := s.theoryService.Delete(r.Context(), claims.CoachID, chi.URLParam(r, "id"), confirmParam(r)); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
