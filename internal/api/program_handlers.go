package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/latateni/latateni-server/internal/http/response"
	"github.com/latateni/latateni-server/internal/service"
)

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	var req service.CreateProgramRequest
	if !decodeBody(w, r, &req, s) {
		return
	}

	program, err := s.programService.Create(r.Context(), claims.CoachID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, program, s.logger)
}

// handleGenerateProgram builds a training program with the AI assistant from
// the coach's exercise catalog. Counts against the daily AI quota.
func (s *Server) handleGenerateProgram(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	var req service.GenerateAIProgramRequest
	if !decodeBody(w, r, &req, s) {
		return
	}

	program, err := s.programService.CreateAI(r.Context(), claims.CoachID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, program, s.logger)
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	if query := r.URL.Query().Get("q"); query != "" {
		session := s.liveSession(claims)
		response.Success(w, session.Programs.Filter(query), s.logger)
		return
	}

	programs, err := s.programService.List(r.Context(), claims.CoachID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, programs, s.logger)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	program, err := s.programService.Get(r.Context(), claims.CoachID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, program, s.logger)
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	if err := s.programService.Delete(r.Context(), claims.CoachID, chi.URLParam(r, "id"), confirmParam(r)); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
