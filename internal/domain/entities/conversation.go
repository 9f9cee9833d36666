package entities

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one prior exchange in an interactive Q&A session.
type ConversationTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// TurnRequest is the input of one interactive Q&A round, anchored to the
// slide being rehearsed. An empty Message marks the opening turn, where
// the assistant asks its first question about the slide.
type TurnRequest struct {
	SlideID   string             `json:"slide_id" validate:"required,uuid"`
	Message   string             `json:"message"`
	History   []ConversationTurn `json:"history" validate:"dive"`
	WithAudio bool               `json:"with_audio"`
}

// TurnResponse is the assistant's reply for one interactive round.
// AudioBase64 is empty when speech synthesis was not requested or failed.
// History is the conversation including this round, ready to send back on
// the next turn.
type TurnResponse struct {
	Reply       string             `json:"reply"`
	AudioBase64 string             `json:"audio,omitempty"`
	AudioFormat string             `json:"audio_format,omitempty"`
	History     []ConversationTurn `json:"history"`
}
