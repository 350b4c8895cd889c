package dto

import "time"

// SendMessageRequest attaches a note to an order.
type SendMessageRequest struct {
	OrderID    int64  `json:"order_id"`
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
}

// MessageResponse is one note in an order's conversation.
type MessageResponse struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
