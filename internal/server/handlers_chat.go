package server

import (
	"net/http"
	"time"

	"github.com/blkdmnd/visual-thesis/internal/chat"
	"github.com/blkdmnd/visual-thesis/internal/server/middleware"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

// sessionStateResponse is returned by GET /api/chat/sessions/{id}.
type sessionStateResponse struct {
	SessionID  string                  `json:"session_id"`
	Typing     bool                    `json:"typing"`
	Transcript []types.TranscriptEntry `json:"transcript"`
}

// handleOpenSession starts a chat session and issues its bearer token.
func (s *Server) handleOpenSession(w http.ResponseWriter, _ *http.Request) {
	session := s.sessions.Open()

	token, expiresAt, err := s.tokens.GenerateToken(session.ID)
	if err != nil {
		_ = s.sessions.Close(session.ID)
		s.errorResponse(w, http.StatusInternalServerError, "failed to issue session token")
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.ChatSessionResponse{
		SessionID: session.ID,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// handleChatTurn sends one visitor message and returns the reply.
func (s *Server) handleChatTurn(w http.ResponseWriter, r *http.Request) {
	session, err := s.authorizedSession(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.ChatTurnRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "text", Message: "message text is required"})
		return
	}

	reply, transcript, err := session.Send(r.Context(), req.Text)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ChatTurnResponse{Reply: reply, Transcript: transcript})
}

// handleGetSession returns the transcript and typing flag.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.authorizedSession(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, sessionStateResponse{
		SessionID:  session.ID,
		Typing:     session.Typing(),
		Transcript: nonNil(session.Transcript()),
	})
}

// handleCloseSession discards the session.
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.sessions.Close(id); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorizedSession returns the session named by the validated token.
func (s *Server) authorizedSession(r *http.Request) (*chat.Session, error) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(id)
}

func nonNil(entries []types.TranscriptEntry) []types.TranscriptEntry {
	if entries == nil {
		return []types.TranscriptEntry{}
	}
	return entries
}
