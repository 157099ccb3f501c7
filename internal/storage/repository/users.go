package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gourav1008/NotesApp/internal/models"
)

// ErrNoRows возвращается, когда запрошенная запись отсутствует в базе.
var ErrNoRows = sql.ErrNoRows

const userColumns = `uid, email, username, password_hash, role, is_blocked,
			      blocked_at, blocked_by, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var blockedAt sql.NullTime
	var blockedBy sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
		&u.IsBlocked, &blockedAt, &blockedBy, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if blockedAt.Valid {
		u.BlockedAt = &blockedAt.Time
	}
	if blockedBy.Valid {
		u.BlockedBy = &blockedBy.String
	}
	return u, nil
}

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (email, username, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей, новые первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// BlockUser помечает пользователя заблокированным, фиксируя время и автора блокировки.
// Условие is_blocked = FALSE делает повторную блокировку (в том числе гонку двух
// администраторов) неуспешной: возвращается 0 затронутых строк.
func (s *Storage) BlockUser(ctx context.Context, userUID, adminUID string) (int64, error) {
	const op = "storage.BlockUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_blocked = TRUE,
			      blocked_at = now(),
			      blocked_by = $1,
			      updated_at = now()
			  WHERE uid = $2 AND is_blocked = FALSE AND role <> 'admin'`
	res, err := s.DB.ExecContext(ctx, query, adminUID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// UnblockUser снимает блокировку и очищает её атрибуты.
func (s *Storage) UnblockUser(ctx context.Context, userUID string) (int64, error) {
	const op = "storage.UnblockUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_blocked = FALSE,
			      blocked_at = NULL,
			      blocked_by = NULL,
			      updated_at = now()
			  WHERE uid = $1 AND is_blocked = TRUE`
	res, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeleteUserCascade удаляет пользователя и все зависимые от него данные
// в одной транзакции: заметки, сообщения (как отправителя и получателя),
// административные заметки, затем саму учётную запись. Журнал
// административных действий не затрагивается.
func (s *Storage) DeleteUserCascade(ctx context.Context, userUID string) error {
	const op = "storage.DeleteUserCascade"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	steps := []string{
		`DELETE FROM notes WHERE user_uid = $1`,
		`DELETE FROM messages WHERE sender_uid = $1 OR recipient_uid = $1`,
		`DELETE FROM admin_notes WHERE user_uid = $1`,
	}
	for _, q := range steps {
		if _, err = tx.ExecContext(ctx, q, userUID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UserStats возвращает по каждому пользователю количество заметок
// и время последнего изменения.
func (s *Storage) UserStats(ctx context.Context) (map[string]models.UserStats, error) {
	const op = "storage.UserStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, COUNT(n.id), MAX(n.updated_at)
			  FROM users u
			  LEFT JOIN notes n ON n.user_uid = u.uid
			  GROUP BY u.uid`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string]models.UserStats)
	for rows.Next() {
		var uid string
		var stats models.UserStats
		var lastUpdate sql.NullTime
		if err = rows.Scan(&uid, &stats.TotalNotes, &lastUpdate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if lastUpdate.Valid {
			stats.LastUpdate = &lastUpdate.Time
		}
		result[uid] = stats
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// IsNotFound сообщает, означает ли ошибка отсутствие записи.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
