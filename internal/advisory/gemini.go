package advisory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Gemini answers assist requests through the Gemini API. Conversations are
// stateless on our side: the client sends the history back with each turn
// and the whole thread is replayed.
type Gemini struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGemini builds a Gemini advisor. The client reads its API key from the
// environment (GEMINI_API_KEY).
func NewGemini(ctx context.Context, model string, log zerolog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, log: log}, nil
}

// Assist replays the conversation with the grounding context as the system
// instruction and returns the model's answer.
func (g *Gemini) Assist(ctx context.Context, req Request) (Response, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{
			{Text: systemContext(req.Profile, req.Timeline)},
		}},
	}

	var contents []*genai.Content
	for _, msg := range req.History {
		role := genai.RoleUser
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: req.Question}},
	})

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return Response{}, fmt.Errorf("assist request failed: %w", err)
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return Response{}, fmt.Errorf("assist request returned no content")
	}

	g.log.Debug().Int("history_turns", len(req.History)).Msg("assist answered")
	return Response{
		Answer:         answer,
		ConversationID: uuid.NewString(),
	}, nil
}
