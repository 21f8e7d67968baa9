package api

import (
	"net/http"

	"github.com/latateni/latateni-server/internal/http/response"
	"github.com/latateni/latateni-server/internal/service"
)

// refreshRequest is the body for both refresh and logout.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// handleLogin authenticates a coach and returns a token pair.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeBody(w, r, &req, s) {
		return
	}

	result, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleRefresh exchanges a refresh token for a new token pair. The old
// refresh token is revoked.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req, s) {
		return
	}
	if req.RefreshToken == "" {
		response.BadRequest(w, "refresh_token is required", s.logger)
		return
	}

	result, err := s.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleLogout revokes the session and tears down the coach's live sync
// state once no session remains.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req, s) {
		return
	}
	if req.RefreshToken == "" {
		response.BadRequest(w, "refresh_token is required", s.logger)
		return
	}

	coachID, err := s.authService.Logout(r.Context(), req.RefreshToken)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if coachID != "" {
		s.liveManager.Drop(coachID)
	}

	response.SuccessMessage(w, nil, "Logged out", s.logger)
}
