package repository

import (
	"context"
	"fmt"

	"github.com/gourav1008/NotesApp/internal/models"
)

const adminNoteColumns = `id, user_uid, admin_uid, content, rich_text, created_at, updated_at`

func scanAdminNote(row interface{ Scan(...any) error }) (*models.AdminNote, error) {
	n := &models.AdminNote{}
	if err := row.Scan(&n.ID, &n.UserUID, &n.AdminUID, &n.Content, &n.RichText,
		&n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateAdminNote сохраняет новую административную заметку и возвращает её.
func (s *Storage) CreateAdminNote(ctx context.Context, note models.AdminNote) (*models.AdminNote, error) {
	const op = "storage.CreateAdminNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	richText := note.RichText
	if len(richText) == 0 {
		richText = []byte(`{}`)
	}
	query := `INSERT INTO admin_notes (user_uid, admin_uid, content, rich_text)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + adminNoteColumns
	n, err := scanAdminNote(s.DB.QueryRowContext(ctx, query,
		note.UserUID, note.AdminUID, note.Content, richText))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListAdminNotesByUser возвращает административные заметки о пользователе,
// новые первыми, с пагинацией.
func (s *Storage) ListAdminNotesByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.AdminNote, error) {
	const op = "storage.ListAdminNotesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + adminNoteColumns + `
			  FROM admin_notes
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AdminNote
	for rows.Next() {
		n, err := scanAdminNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountAdminNotesByUser возвращает количество административных заметок о пользователе.
func (s *Storage) CountAdminNotesByUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountAdminNotesByUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM admin_notes WHERE user_uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// GetAdminNote возвращает административную заметку по идентификатору.
func (s *Storage) GetAdminNote(ctx context.Context, id int64) (*models.AdminNote, error) {
	const op = "storage.GetAdminNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + adminNoteColumns + ` FROM admin_notes WHERE id = $1`
	n, err := scanAdminNote(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// UpdateAdminNote целиком заменяет содержимое административной заметки.
func (s *Storage) UpdateAdminNote(ctx context.Context, id int64, content string, richText []byte) (*models.AdminNote, error) {
	const op = "storage.UpdateAdminNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if len(richText) == 0 {
		richText = []byte(`{}`)
	}
	query := `UPDATE admin_notes
			  SET content = $1, rich_text = $2, updated_at = now()
			  WHERE id = $3
			  RETURNING ` + adminNoteColumns
	n, err := scanAdminNote(s.DB.QueryRowContext(ctx, query, content, richText, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// DeleteAdminNote удаляет административную заметку, возвращает количество удалённых записей.
func (s *Storage) DeleteAdminNote(ctx context.Context, id int64) (int64, error) {
	const op = "storage.DeleteAdminNote"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM admin_notes WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
