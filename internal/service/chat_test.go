package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/chat"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

func TestChatService_Reply(t *testing.T) {
	client := &mockChat{}
	svc := NewChatService(client, newTestLogger())

	client.On("Reply", mock.Anything, "Do you deliver to Nairobi?").
		Return("Yes, daily.", chat.OutcomeOK).Once()

	reply, err := svc.Reply(context.Background(), "  Do you deliver to Nairobi?  ")
	require.NoError(t, err)
	assert.Equal(t, "Yes, daily.", reply)
	client.AssertExpectations(t)
}

func TestChatService_FallbackIsNotAnError(t *testing.T) {
	client := &mockChat{}
	svc := NewChatService(client, newTestLogger())
	client.On("Reply", mock.Anything, "hi").Return(chat.ErrorReply, chat.OutcomeError).Once()

	reply, err := svc.Reply(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, chat.ErrorReply, reply)
}

func TestChatService_RejectsEmptyAndLong(t *testing.T) {
	client := &mockChat{}
	svc := NewChatService(client, newTestLogger())

	_, err := svc.Reply(context.Background(), " \n ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Reply(context.Background(), strings.Repeat("a", MaxChatMessageLength+1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	client.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything)
}
