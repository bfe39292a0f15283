package service

import (
	"context"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	apperrors "github.com/UNO-CSCI4830/SureSight-sub001/internal/errors"
)

// MessageServiceOptions groups dependencies for MessageService.
type MessageServiceOptions struct {
	Messages core.MessageRepository
}

// MessageService handles direct messaging between users.
type MessageService struct {
	messages core.MessageRepository
}

// NewMessageService constructs a new MessageService.
func NewMessageService(opts MessageServiceOptions) *MessageService {
	return &MessageService{messages: opts.Messages}
}

// Send delivers a message from the actor to the recipient.
func (s *MessageService) Send(ctx context.Context, actor Actor, req model.SendMessageRequest) (*model.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.RecipientID == actor.UserID {
		return nil, apperrors.Validation("cannot message yourself")
	}
	return s.messages.Create(ctx, actor.UserID, req)
}

// Conversation lists messages between the actor and another user.
func (s *MessageService) Conversation(ctx context.Context, actor Actor, otherUserID string, opts model.MessagesListOptions) ([]*model.Message, error) {
	if otherUserID == "" {
		return nil, apperrors.Validation("other user id is required")
	}
	opts.UserID = actor.UserID
	opts.OtherUserID = otherUserID
	return s.messages.ListConversation(ctx, opts)
}

// MarkRead stamps a message read on behalf of its recipient.
func (s *MessageService) MarkRead(ctx context.Context, actor Actor, messageID string) (bool, error) {
	if messageID == "" {
		return false, apperrors.Validation("message id is required")
	}
	return s.messages.MarkRead(ctx, messageID, actor.UserID)
}
