// Package models содержит модель записи журнала административных действий.
// Запись создаётся один раз после успешного выполнения привилегированной
// операции и никогда не изменяется и не удаляется.
package models

import "time"

// Типы административных действий, фиксируемых в журнале.
const (
	ActionDeleteUser  = "DELETE_USER"
	ActionBlockUser   = "BLOCK_USER"
	ActionUnblockUser = "UNBLOCK_USER"
	ActionAddNote     = "ADD_NOTE"
	ActionUpdateNote  = "UPDATE_NOTE"
	ActionDeleteNote  = "DELETE_NOTE"
)

// ActionTypes перечисляет все допустимые типы действий.
var ActionTypes = []string{
	ActionDeleteUser,
	ActionBlockUser,
	ActionUnblockUser,
	ActionAddNote,
	ActionUpdateNote,
	ActionDeleteNote,
}

// ValidActionType проверяет, что строка является одним из шести типов действий.
func ValidActionType(s string) bool {
	for _, t := range ActionTypes {
		if s == t {
			return true
		}
	}
	return false
}

// AdminLogEntry неизменяемая запись журнала административных действий.
type AdminLogEntry struct {
	ID         int64     `json:"id"`
	AdminUID   string    `json:"admin_id"`       // UID администратора, выполнившего действие
	ActionType string    `json:"action_type"`    // Один из шести типов действий
	TargetUID  string    `json:"target_user_id"` // UID пользователя, над которым выполнено действие
	Details    string    `json:"details"`        // Человеко-читаемое описание
	CreatedAt  time.Time `json:"timestamp"`
}

// LogFilter параметры фильтрации журнала. Все поля опциональны
// и комбинируются независимо друг от друга.
type LogFilter struct {
	AdminUID   string     // UID администратора
	ActionType string     // Тип действия (один из шести)
	TargetUID  string     // UID целевого пользователя
	DateFrom   *time.Time // Нижняя граница времени (включительно)
	DateTo     *time.Time // Верхняя граница времени (включительно)
}

// LogPage страница журнала с данными пагинации.
type LogPage struct {
	Entries    []*AdminLogEntry `json:"logs"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}
