package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gourav1008/NotesApp/internal/models"
)

// SaveAdminLog добавляет одну неизменяемую запись в журнал административных
// действий. Операций изменения или удаления записей журнала у хранилища нет.
func (s *Storage) SaveAdminLog(ctx context.Context, entry models.AdminLogEntry) error {
	const op = "storage.SaveAdminLog"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO admin_logs (admin_uid, action_type, target_uid, details)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query,
		entry.AdminUID, entry.ActionType, entry.TargetUID, entry.Details); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// logFilterConditions собирает SQL-условия и аргументы по заданному фильтру.
func logFilterConditions(filter models.LogFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, cond+" $"+strconv.Itoa(len(args)))
	}

	if filter.AdminUID != "" {
		add("admin_uid =", filter.AdminUID)
	}
	if filter.ActionType != "" {
		add("action_type =", filter.ActionType)
	}
	if filter.TargetUID != "" {
		add("target_uid =", filter.TargetUID)
	}
	if filter.DateFrom != nil {
		add("created_at >=", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("created_at <=", *filter.DateTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListAdminLogs возвращает записи журнала по фильтру, строго по убыванию
// времени; при равенстве времени — в обратном порядке вставки.
func (s *Storage) ListAdminLogs(ctx context.Context, filter models.LogFilter, limit, offset int) ([]*models.AdminLogEntry, error) {
	const op = "storage.ListAdminLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where, args := logFilterConditions(filter)
	args = append(args, limit, offset)
	query := `SELECT id, admin_uid, action_type, target_uid, details, created_at
			  FROM admin_logs` + where + `
			  ORDER BY created_at DESC, id DESC
			  LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AdminLogEntry
	for rows.Next() {
		e := &models.AdminLogEntry{}
		if err = rows.Scan(&e.ID, &e.AdminUID, &e.ActionType, &e.TargetUID,
			&e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountAdminLogs возвращает количество записей журнала по фильтру.
func (s *Storage) CountAdminLogs(ctx context.Context, filter models.LogFilter) (int, error) {
	const op = "storage.CountAdminLogs"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where, args := logFilterConditions(filter)
	var total int
	query := `SELECT COUNT(*) FROM admin_logs` + where
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
