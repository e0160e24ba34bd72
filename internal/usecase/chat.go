package usecase

import (
	"context"
	"errors"
	"time"

	"tekmakon-site/internal/domain"
)

const defaultMinLatency = 500 * time.Millisecond

// Matcher resolves free text to a canned reply.
type Matcher interface {
	Match(query string) string
}

type ChatInput struct {
	// Message is nil when the request did not carry one.
	Message *string
}

// ChatService answers chat widget messages from the knowledge base.
type ChatService struct {
	matcher    Matcher
	minLatency time.Duration
}

// NewChatService creates a ChatService. A negative minLatency selects the
// default floor; zero disables it.
func NewChatService(m Matcher, minLatency time.Duration) (*ChatService, error) {
	if m == nil {
		return nil, errors.New("usecase: matcher must not be nil")
	}
	if minLatency < 0 {
		minLatency = defaultMinLatency
	}
	return &ChatService{matcher: m, minLatency: minLatency}, nil
}

// Reply matches the message and returns no sooner than the latency floor
// measured from the call, unless ctx ends first.
func (s *ChatService) Reply(ctx context.Context, in ChatInput) (domain.ChatMessage, error) {
	start := time.Now()
	if in.Message == nil {
		return domain.ChatMessage{}, newError(ErrorInvalidInput, "missing_message", MsgMessageRequired, nil)
	}

	content := s.matcher.Match(*in.Message)

	if err := s.waitFloor(ctx, start); err != nil {
		return domain.ChatMessage{}, newError(ErrorInternal, "reply_cancelled", MsgProcessFailed, err)
	}
	return domain.ChatMessage{Role: domain.RoleAssistant, Content: content}, nil
}

func (s *ChatService) waitFloor(ctx context.Context, start time.Time) error {
	remaining := s.minLatency - time.Since(start)
	if remaining <= 0 {
		return nil
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
