package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/latateni/latateni-server/internal/http/response"
	"github.com/latateni/latateni-server/internal/service"
)

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	var req service.CreateExerciseRequest
	if !decodeBody(w, r, &req, s) {
		return
	}

	exercise, err := s.exerciseService.Create(r.Context(), claims.CoachID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, exercise, s.logger)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	if query := r.URL.Query().Get("q"); query != "" {
		session := s.liveSession(claims)
		response.Success(w, session.Exercises.Filter(query), s.logger)
		return
	}

	exercises, err := s.exerciseService.List(r.Context(), claims.CoachID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, exercises, s.logger)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	exercise, err := s.exerciseService.Get(r.Context(), claims.CoachID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, exercise, s.logger)
}

// handleDeleteExercise deletes an exercise. Programs keep their embedded
// copies of it.
func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	if err := s.exerciseService.Delete(r.Context(), claims.CoachID, chi.URLParam(r, "id"), confirmParam(r)); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
