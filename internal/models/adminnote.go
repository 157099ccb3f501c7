// Package models содержит модель административной заметки —
// аннотации администратора, привязанной к конкретному пользователю.
package models

import (
	"encoding/json"
	"time"
)

// AdminNote представляет заметку администратора о пользователе.
type AdminNote struct {
	ID        int64           `json:"id"`
	UserUID   string          `json:"user_id"`  // UID пользователя, к которому привязана заметка
	AdminUID  string          `json:"admin_id"` // UID автора-администратора
	Content   string          `json:"content"`
	RichText  json.RawMessage `json:"rich_text"` // Произвольное rich-text представление
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DummyAdminNote используется для приёма данных административной заметки из JSON-запроса.
type DummyAdminNote struct {
	Content  string          `json:"content" validate:"required"` // Текст заметки, обязателен и непуст
	RichText json.RawMessage `json:"rich_text,omitempty"`
}

// AdminNotePage страница административных заметок с данными пагинации.
type AdminNotePage struct {
	Notes      []*AdminNote `json:"notes"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}
