package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/latateni/latateni-server/internal/http/response"
	"github.com/latateni/latateni-server/internal/service"
)

// handleCreatePlayer creates a new player for the authenticated coach.
func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	var req service.CreatePlayerRequest
	if !decodeBody(w, r, &req, s) {
		return
	}

	player, err := s.playerService.Create(r.Context(), claims.CoachID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, player, s.logger)
}

// handleListPlayers returns the coach's players. With ?q= the live cache is
// filtered by case-insensitive substring match; without it the store is read
// directly.
func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	if query := r.URL.Query().Get("q"); query != "" {
		session := s.liveSession(claims)
		response.Success(w, session.Players.Filter(query), s.logger)
		return
	}

	players, err := s.playerService.List(r.Context(), claims.CoachID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, players, s.logger)
}

// handleGetPlayer returns one player by id.
func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	player, err := s.playerService.Get(r.Context(), claims.CoachID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, player, s.logger)
}

// handleDeletePlayer deletes a player. Requires ?confirm=true.
func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	if err := s.playerService.Delete(r.Context(), claims.CoachID, chi.URLParam(r, "id"), confirmParam(r)); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleExportPlayers downloads the coach's full player roster as a JSON
// attachment.
func (s *Server) handleExportPlayers(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	players, err := s.playerService.List(r.Context(), claims.CoachID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="spillere.json"`)
	if err := json.MarshalWrite(w, players); err != nil {
		s.logger.Error("failed to write player export", "error", err)
	}
}

// handleAnalyzePlayer asks the AI assistant for a development analysis of
// one player.
func (s *Server) handleAnalyzePlayer(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	player, err := s.playerService.Get(r.Context(), claims.CoachID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	analysis, err := s.assistant.AnalyzePlayer(r.Context(), claims.CoachID, player)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"analysis": analysis}, s.logger)
}

// handleSuggestExercises asks the AI assistant to pick suitable exercises
// for a player from the coach's own catalog.
func (s *Server) handleSuggestExercises(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	player, err := s.playerService.Get(r.Context(), claims.CoachID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	exercises, err := s.exerciseService.List(r.Context(), claims.CoachID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	suggestions, err := s.assistant.SuggestExercises(r.Context(), claims.CoachID, player, exercises)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"suggestions": suggestions}, s.logger)
}
