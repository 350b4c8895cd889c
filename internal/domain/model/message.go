package model

import "time"

// Message is a note between the buyer and a florist tied to one order.
type Message struct {
	ID         int64
	OrderID    int64
	SenderID   int64
	ReceiverID int64
	Content    string
	CreatedAt  time.Time
}
