package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gourav1008/NotesApp/internal/models"
)

const testSchema = `
	CREATE EXTENSION IF NOT EXISTS "pgcrypto";

	CREATE TABLE users (
		uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
		blocked_at TIMESTAMPTZ,
		blocked_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE notes (
		id SERIAL PRIMARY KEY,
		user_uid UUID NOT NULL REFERENCES users(uid),
		title VARCHAR(100) NOT NULL,
		content VARCHAR(5000) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE admin_notes (
		id SERIAL PRIMARY KEY,
		user_uid UUID NOT NULL REFERENCES users(uid),
		admin_uid UUID NOT NULL,
		content TEXT NOT NULL,
		rich_text JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE messages (
		id SERIAL PRIMARY KEY,
		sender_uid UUID NOT NULL,
		recipient_uid UUID NOT NULL REFERENCES users(uid),
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE admin_logs (
		id SERIAL PRIMARY KEY,
		admin_uid UUID NOT NULL,
		action_type TEXT NOT NULL,
		target_uid UUID NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// setupTestDatabase поднимает контейнер PostgreSQL и создает схему.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			if err = storage.DB.Ping(); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(testSchema)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		_ = container.Terminate(ctx)
	}

	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, role string) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, email, username, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		uid, email, username, "hashedpassword", role)
	require.NoError(t, err)
	return uid
}

// CreateNote создает тестовую заметку и возвращает её ID
func (f *TestDataFactory) CreateNote(t *testing.T, userUID, title, content string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO notes (user_uid, title, content)
		VALUES ($1, $2, $3) RETURNING id`,
		userUID, title, content).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateAdminLog создает тестовую запись журнала с заданным временем
func (f *TestDataFactory) CreateAdminLog(t *testing.T, entry models.AdminLogEntry, createdAt time.Time) {
	_, err := f.storage.DB.Exec(`INSERT INTO admin_logs (admin_uid, action_type, target_uid, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.AdminUID, entry.ActionType, entry.TargetUID, entry.Details, createdAt)
	require.NoError(t, err)
}

// CountRows возвращает количество строк в таблице для условия uid/user_uid
func (f *TestDataFactory) CountRows(t *testing.T, query string, args ...any) int {
	var count int
	err := f.storage.DB.QueryRow(query, args...).Scan(&count)
	require.NoError(t, err)
	return count
}
