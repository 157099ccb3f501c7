// Package models содержит доменные структуры, описывающие заметку пользователя,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Note представляет собой заметку, принадлежащую одному пользователю.
type Note struct {
	ID        int64     `json:"id"`
	UserUID   string    `json:"user_id"` // UID владельца заметки
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DummyNote используется для приёма данных заметки из JSON-запроса
// до их валидации и сохранения.
type DummyNote struct {
	Title   string `json:"title" validate:"required,max=100"`    // Заголовок (до 100 символов)
	Content string `json:"content" validate:"required,max=5000"` // Содержимое (до 5000 символов)
}
