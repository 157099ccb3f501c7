package repository

import (
	"context"
	"fmt"

	"github.com/gourav1008/NotesApp/internal/models"
)

// CreateMessage сохраняет сообщение администратора пользователю и возвращает его.
func (s *Storage) CreateMessage(ctx context.Context, msg models.Message) (*models.Message, error) {
	const op = "storage.CreateMessage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	m := &models.Message{}
	query := `INSERT INTO messages (sender_uid, recipient_uid, content)
			  VALUES ($1, $2, $3)
			  RETURNING id, sender_uid, recipient_uid, content, created_at`
	if err := s.DB.QueryRowContext(ctx, query,
		msg.SenderUID, msg.RecipientUID, msg.Content).Scan(
		&m.ID, &m.SenderUID, &m.RecipientUID, &m.Content, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ListMessagesByRecipient возвращает сообщения, адресованные пользователю, новые первыми.
func (s *Storage) ListMessagesByRecipient(ctx context.Context, recipientUID string) ([]*models.Message, error) {
	const op = "storage.ListMessagesByRecipient"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, sender_uid, recipient_uid, content, created_at
			  FROM messages
			  WHERE recipient_uid = $1
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, recipientUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Message
	for rows.Next() {
		m := &models.Message{}
		if err = rows.Scan(&m.ID, &m.SenderUID, &m.RecipientUID, &m.Content,
			&m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
