package message

import (
	"context"

	"minemarket/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	Conversation(ctx context.Context, userA, userB int64) ([]domain.Message, error)
	ListByMine(ctx context.Context, mineID int64) ([]domain.Message, error)
	MarkSeen(ctx context.Context, receiverID, senderID int64) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type MineReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Mine, error)
}

// Notifier pushes a freshly stored message to connected recipients.
type Notifier interface {
	SendToUser(userID int64, message interface{}) bool
}
