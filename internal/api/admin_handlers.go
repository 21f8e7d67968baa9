package api

import (
	"net/http"

	"github.com/latateni/latateni-server/internal/http/response"
	"github.com/latateni/latateni-server/internal/service"
)

// handleCreateCoach provisions a new coach account. Admin only; there is no
// self-service registration.
func (s *Server) handleCreateCoach(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCoachRequest
	if !decodeBody(w, r, &req, s) {
		return
	}

	coach, err := s.adminService.CreateCoach(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, coach, s.logger)
}

// handleListCoaches lists all coach accounts.
func (s *Server) handleListCoaches(w http.ResponseWriter, r *http.Request) {
	coaches, err := s.adminService.ListCoaches(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, coaches, s.logger)
}

// handleAIRemaining reports how many AI requests the coach has left in the
// current 24 hour window.
func (s *Server) handleAIRemaining(w http.ResponseWriter, r *http.Request) {
	claims, ok := coachFromRequest(w, r, s)
	if !ok {
		return
	}

	remaining, err := s.assistant.Remaining(r.Context(), claims.CoachID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]int{"remaining": remaining}, s.logger)
}
