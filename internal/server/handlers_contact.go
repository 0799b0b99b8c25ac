package server

import (
	"net/http"

	"github.com/blkdmnd/visual-thesis/internal/contact"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

// handleContact composes the recruiter inquiry mailto URI for the visitor's mail client.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req types.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	mailto, err := contact.ComposeMailto(s.owner, req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ContactResponse{Mailto: mailto})
}
