package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"minemarket/internal/domain"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

type messageModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	SenderID   int64     `gorm:"column:sender_id;index"`
	ReceiverID int64     `gorm:"column:receiver_id;index"`
	MineID     *int64    `gorm:"column:mine_id;index"`
	Content    string    `gorm:"column:content"`
	Seen       bool      `gorm:"column:seen"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "messages" }

func toDomainMessage(m messageModel) *domain.Message {
	return &domain.Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		MineID:     m.MineID,
		Content:    m.Content,
		Seen:       m.Seen,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	m := messageModel{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		MineID:     msg.MineID,
		Content:    msg.Content,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*msg = *toDomainMessage(m)
	return nil
}

// Conversation returns both directions between two users in creation order.
func (r *MessageRepository) Conversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	var rows []messageModel
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMessage(m))
	}
	return out, nil
}

func (r *MessageRepository) ListByMine(ctx context.Context, mineID int64) ([]domain.Message, error) {
	var rows []messageModel
	err := r.db.WithContext(ctx).
		Where("mine_id = ?", mineID).
		Order("created_at asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMessage(m))
	}
	return out, nil
}

func (r *MessageRepository) MarkSeen(ctx context.Context, receiverID, senderID int64) error {
	return r.db.WithContext(ctx).Model(&messageModel{}).
		Where("receiver_id = ? AND sender_id = ? AND seen = ?", receiverID, senderID, false).
		Update("seen", true).Error
}
