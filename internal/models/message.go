package models

import "time"

// Message сообщение от администратора пользователю.
type Message struct {
	ID           int64     `json:"id"`
	SenderUID    string    `json:"sender_id"`
	RecipientUID string    `json:"recipient_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// DummyMessage используется для приёма данных сообщения из JSON-запроса.
type DummyMessage struct {
	RecipientUID string `json:"recipient_id" validate:"required,uuid"`
	Content      string `json:"content" validate:"required"`
}
