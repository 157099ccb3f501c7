// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, роль и состояние блокировки.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string     `json:"id"`                   // Уникальный идентификатор пользователя
	Email        string     `json:"email"`                // Электронная почта (уникальная)
	Username     string     `json:"name"`                 // Отображаемое имя пользователя (уникальное)
	PasswordHash string     `json:"-"`                    // Хэш пароля, никогда не отдаётся наружу
	Role         string     `json:"role"`                 // Роль пользователя, admin или user
	IsBlocked    bool       `json:"is_blocked"`           // Признак блокировки учётной записи
	BlockedAt    *time.Time `json:"blocked_at,omitempty"` // Время блокировки
	BlockedBy    *string    `json:"blocked_by,omitempty"` // UID администратора, выполнившего блокировку
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsAdmin сообщает, является ли пользователь администратором.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserStats агрегированная статистика по заметкам одного пользователя.
type UserStats struct {
	TotalNotes int        `json:"total_notes"`
	LastUpdate *time.Time `json:"last_update"`
}
