package interactive

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/repositories"
	"github.com/pitch-assistant-team/pitch-assistant/pkg/ai"
)

const followUpPromptFormat = `You are an interactive presentation practice assistant. The user is practicing a presentation.
The current slide is titled %q and its content is:
---
%s
---
The user has just said: %q.
Your role is to respond naturally, ask clarifying questions, or provide brief, relevant follow-up points based on their response and the slide content. Keep your responses concise and conversational. If the user's response seems complete for the current point, you can gently guide them to the next point or ask if they have questions.`

const openingPromptFormat = `You are an interactive presentation practice assistant. The user is practicing a presentation and has just arrived at a new slide.
The current slide is titled %q and its content is:
---
%s
---
Your role is to initiate the conversation by asking a relevant, open-ended question about the slide's content to simulate an audience member or sales prospect. Make the question engaging and directly related to the provided slide material. Keep your question concise.`

const openingTrigger = "Based on the slide content, please ask me an initial question."

// ChatModel is the LLM collaborator for conversation turns.
type ChatModel interface {
	Chat(ctx context.Context, system string, history []ai.Message, user string, temperature float32) (string, error)
}

// SpeechModel renders the assistant's reply as audio.
type SpeechModel interface {
	Synthesize(ctx context.Context, text string) ([]byte, string, error)
}

// Service runs interactive Q&A rounds against a slide
type Service struct {
	slideRepo repositories.SlideRepository
	chat      ChatModel
	speech    SpeechModel
	logger    *zap.Logger
}

// NewService constructs the interactive service
func NewService(slideRepo repositories.SlideRepository, chat ChatModel, speech SpeechModel, logger *zap.Logger) *Service {
	return &Service{
		slideRepo: slideRepo,
		chat:      chat,
		speech:    speech,
		logger:    logger,
	}
}

// Turn runs one conversation round. An empty message produces the opening
// question for the slide. Speech synthesis failures degrade to a
// text-only reply rather than failing the turn.
func (s *Service) Turn(ctx context.Context, req entities.TurnRequest) (*entities.TurnResponse, error) {
	slideID, err := uuid.Parse(req.SlideID)
	if err != nil {
		return nil, fmt.Errorf("invalid slide ID: %w", err)
	}
	slide, err := s.slideRepo.FindByID(ctx, slideID)
	if err != nil {
		return nil, fmt.Errorf("load slide: %w", err)
	}
	if slide == nil {
		return nil, fmt.Errorf("slide %s not found", slideID)
	}

	title := slide.Title
	if title == "" {
		title = "Untitled Slide"
	}

	var system, user string
	if req.Message != "" {
		system = fmt.Sprintf(followUpPromptFormat, title, slide.Content, req.Message)
		user = req.Message
	} else {
		system = fmt.Sprintf(openingPromptFormat, title, slide.Content)
		user = openingTrigger
	}

	// The model sees the history as it stood before this round; the
	// current message rides as the user prompt.
	history := make([]ai.Message, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, ai.Message{Role: turn.Role, Content: turn.Content})
	}

	reply, err := s.chat.Chat(ctx, system, history, user, 0.7)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	resp := &entities.TurnResponse{
		Reply:   reply,
		History: appendHistory(req.History, req.Message, reply),
	}

	if req.WithAudio {
		audio, contentType, err := s.speech.Synthesize(ctx, reply)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Speech synthesis failed, returning text only", zap.Error(err))
			}
		} else {
			resp.AudioBase64 = base64.StdEncoding.EncodeToString(audio)
			resp.AudioFormat = contentType
		}
	}

	return resp, nil
}

// appendHistory adds this round to the transcript. The user entry is only
// present on follow-up turns; the opening question has no user utterance.
func appendHistory(history []entities.ConversationTurn, message, reply string) []entities.ConversationTurn {
	updated := make([]entities.ConversationTurn, len(history), len(history)+2)
	copy(updated, history)
	if message != "" {
		updated = append(updated, entities.ConversationTurn{Role: entities.RoleUser, Content: message})
	}
	return append(updated, entities.ConversationTurn{Role: entities.RoleAssistant, Content: reply})
}
