package advisory

import (
	"context"
	"errors"

	"github.com/horizonfin/horizon/internal/domain"
)

// ErrUnavailable is returned when no advisory backend is configured.
var ErrUnavailable = errors.New("advisory service is not configured")

// Message is one turn of an assist conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request carries everything an advisor needs to answer one question: the
// profile, its projected timeline and the conversation so far.
type Request struct {
	Profile  domain.Profile
	Timeline []domain.TimelineRow
	Question string
	History  []Message
}

// Response is the advisor's answer, tagged with a conversation id the client
// echoes back to continue the thread.
type Response struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id"`
}

// Advisor answers financial planning questions grounded in a profile's
// projection.
type Advisor interface {
	Assist(ctx context.Context, req Request) (Response, error)
}

// Disabled is the fallback advisor used when no backend is configured; every
// question fails with ErrUnavailable.
type Disabled struct{}

func (Disabled) Assist(context.Context, Request) (Response, error) {
	return Response{}, ErrUnavailable
}
