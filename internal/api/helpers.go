package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/http/response"
	"github.com/latateni/latateni-server/internal/live"
)

// maxBodyBytes caps request bodies. Player and theory payloads carry
// base64-encoded images, so the limit is generous.
const maxBodyBytes = 32 << 20 // 32 MB

// decodeBody decodes a JSON request body into dst. Writes a 400 response
// and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, s *Server) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return false
	}
	return true
}

// coachFromRequest returns the verified claims, or writes a 401 and returns
// false. requireAuth guarantees presence, so a miss indicates a wiring bug.
func coachFromRequest(w http.ResponseWriter, r *http.Request, s *Server) (*auth.AccessClaims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required", s.logger)
		return nil, false
	}
	return claims, true
}

// liveSession returns (and binds, on first use) the coach's live session.
func (s *Server) liveSession(claims *auth.AccessClaims) *live.Session {
	return s.liveManager.Session(live.Identity{ID: claims.CoachID, Email: claims.Email})
}

// confirmParam reads the ?confirm=true query parameter used by delete
// endpoints.
func confirmParam(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
