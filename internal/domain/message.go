package domain

import "time"

// Message is a direct message between two users, optionally scoped to a mine.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	MineID     *int64    `json:"mine_id,omitempty"`
	Content    string    `json:"content"`
	Seen       bool      `json:"seen"`
	CreatedAt  time.Time `json:"created_at"`
}
