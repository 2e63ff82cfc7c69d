package message

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
)

type Service struct {
	messages MessageRepository
	users    UserReader
	mines    MineReader
	notifier Notifier
}

func NewService(messages MessageRepository, users UserReader, mines MineReader, notifier Notifier) *Service {
	return &Service{messages: messages, users: users, mines: mines, notifier: notifier}
}

func (s *Service) Send(ctx context.Context, actor authz.Actor, req SendMessageRequest) (*domain.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrValidation
	}
	if req.ReceiverID == actor.ID {
		return nil, ErrValidation
	}

	if _, err := s.users.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.MineID != nil {
		if _, err := s.mines.GetByID(ctx, *req.MineID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	msg := &domain.Message{
		SenderID:   actor.ID,
		ReceiverID: req.ReceiverID,
		MineID:     req.MineID,
		Content:    content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SendToUser(msg.ReceiverID, newMessageEvent(msg))
	}
	return msg, nil
}

// Conversation returns the thread with the other user and marks their
// messages to the actor as seen.
func (s *Service) Conversation(ctx context.Context, actor authz.Actor, otherID int64) ([]domain.Message, error) {
	if _, err := s.users.GetByID(ctx, otherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	msgs, err := s.messages.Conversation(ctx, actor.ID, otherID)
	if err != nil {
		return nil, err
	}
	if err := s.messages.MarkSeen(ctx, actor.ID, otherID); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListByMine is restricted to the mine owner and admins.
func (s *Service) ListByMine(ctx context.Context, actor authz.Actor, mineID int64) ([]domain.Message, error) {
	mine, err := s.mines.GetByID(ctx, mineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mine.OwnerID}) {
		return nil, ErrForbidden
	}
	return s.messages.ListByMine(ctx, mineID)
}
