package types

// Role identifies the author of a transcript entry.
type Role string

// Role constants for chat transcripts
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TranscriptEntry is one chat turn.
type TranscriptEntry struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ChatTurnRequest is the request body for submitting a chat turn.
type ChatTurnRequest struct {
	Text string `json:"text" validate:"required"`
}

// Validate validates the ChatTurnRequest using the validator.
func (r *ChatTurnRequest) Validate() error {
	return validate.Struct(r)
}

// ChatTurnResponse is returned after a chat turn completes.
type ChatTurnResponse struct {
	Reply      string            `json:"reply"`
	Transcript []TranscriptEntry `json:"transcript"`
}

// ChatSessionResponse is returned when a chat session is opened.
type ChatSessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
