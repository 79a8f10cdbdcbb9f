package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/chat"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

// MaxChatMessageLength bounds a visitor message in characters.
const MaxChatMessageLength = 2000

// ChatReplier answers a chat message. *chat.Client satisfies it.
type ChatReplier interface {
	Reply(ctx context.Context, message string) (string, chat.Outcome)
}

// ChatService answers visitor chat messages.
type ChatService struct {
	client ChatReplier
	logger *slog.Logger
}

// NewChatService creates a chat service.
func NewChatService(client ChatReplier, logger *slog.Logger) *ChatService {
	return &ChatService{client: client, logger: logger}
}

// Reply returns the assistant's answer. Only an empty or oversized message is
// an error; API problems come back as fallback text.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.InvalidInput("message is required")
	}
	if len([]rune(message)) > MaxChatMessageLength {
		return "", apperrors.InvalidInput("message is too long")
	}

	reply, outcome := s.client.Reply(ctx, message)
	chatRepliesTotal.WithLabelValues(string(outcome)).Inc()
	if outcome != chat.OutcomeOK {
		s.logger.InfoContext(ctx, "chat answered with fallback", slog.String("outcome", string(outcome)))
	}
	return reply, nil
}
