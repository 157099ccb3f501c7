package repository

import (
	"context"
	"fmt"

	"github.com/gourav1008/NotesApp/internal/models"
)

const noteColumns = `id, user_uid, title, content, created_at, updated_at`

func scanNote(row interface{ Scan(...any) error }) (*models.Note, error) {
	n := &models.Note{}
	if err := row.Scan(&n.ID, &n.UserUID, &n.Title, &n.Content,
		&n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateNote сохраняет новую заметку и возвращает её с заполненными
// идентификатором и временными метками.
func (s *Storage) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	const op = "storage.CreateNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notes (user_uid, title, content)
			  VALUES ($1, $2, $3)
			  RETURNING ` + noteColumns
	n, err := scanNote(s.DB.QueryRowContext(ctx, query, note.UserUID, note.Title, note.Content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListNotesByUser возвращает заметки пользователя, новые первыми.
func (s *Storage) ListNotesByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Note, error) {
	const op = "storage.ListNotesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + noteColumns + `
			  FROM notes
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	return s.listNotes(ctx, op, query, userUID, limit, offset)
}

// ListAllNotes возвращает заметки всех пользователей, новые первыми.
func (s *Storage) ListAllNotes(ctx context.Context, limit, offset int) ([]*models.Note, error) {
	const op = "storage.ListAllNotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + noteColumns + `
			  FROM notes
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`
	return s.listNotes(ctx, op, query, limit, offset)
}

func (s *Storage) listNotes(ctx context.Context, op, query string, args ...any) ([]*models.Note, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
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

// GetNote возвращает заметку по идентификатору без проверки владельца.
// Используется административными операциями.
func (s *Storage) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	const op = "storage.GetNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`
	n, err := scanNote(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// GetNoteForUser возвращает заметку по идентификатору, если она принадлежит
// указанному пользователю.
func (s *Storage) GetNoteForUser(ctx context.Context, id int64, userUID string) (*models.Note, error) {
	const op = "storage.GetNoteForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_uid = $2`
	n, err := scanNote(s.DB.QueryRowContext(ctx, query, id, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// UpdateNoteForUser обновляет заголовок и содержимое заметки пользователя.
// Возвращает обновлённую запись.
func (s *Storage) UpdateNoteForUser(ctx context.Context, id int64, userUID string, note models.Note) (*models.Note, error) {
	const op = "storage.UpdateNoteForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notes
			  SET title = $1, content = $2, updated_at = now()
			  WHERE id = $3 AND user_uid = $4
			  RETURNING ` + noteColumns
	n, err := scanNote(s.DB.QueryRowContext(ctx, query, note.Title, note.Content, id, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// UpdateNote обновляет любую заметку без проверки владельца (административная операция).
func (s *Storage) UpdateNote(ctx context.Context, id int64, note models.Note) (*models.Note, error) {
	const op = "storage.UpdateNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notes
			  SET title = $1, content = $2, updated_at = now()
			  WHERE id = $3
			  RETURNING ` + noteColumns
	n, err := scanNote(s.DB.QueryRowContext(ctx, query, note.Title, note.Content, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// DeleteNoteForUser удаляет заметку пользователя, возвращает количество удалённых записей.
func (s *Storage) DeleteNoteForUser(ctx context.Context, id int64, userUID string) (int64, error) {
	const op = "storage.DeleteNoteForUser"
	return s.deleteNote(ctx, op, `DELETE FROM notes WHERE id = $1 AND user_uid = $2`, id, userUID)
}

// DeleteNote удаляет любую заметку (административная операция).
func (s *Storage) DeleteNote(ctx context.Context, id int64) (int64, error) {
	const op = "storage.DeleteNote"
	return s.deleteNote(ctx, op, `DELETE FROM notes WHERE id = $1`, id)
}

func (s *Storage) deleteNote(ctx context.Context, op, query string, args ...any) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
