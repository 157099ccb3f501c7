package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/lib/jwt"
	"github.com/gourav1008/NotesApp/internal/lib/password"
	"github.com/gourav1008/NotesApp/internal/models"
	"github.com/gourav1008/NotesApp/internal/storage/repository"
)

// MockUserRepository реализует интерфейс UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestMaker())

	created := &models.User{
		UID:      "c6c557f1-6a6a-4c6f-9203-e9d9a37f0001",
		Email:    "alice@example.com",
		Username: "alice",
		Role:     models.RoleUser,
	}

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		// email приводится к нижнему регистру, пароль хранится только как хэш
		return u.Email == "alice@example.com" &&
			u.Role == models.RoleUser &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret123"
	})).Return(created.UID, nil)
	repo.On("GetUser", mock.Anything, created.UID).Return(created, nil)

	res, err := service.Register(context.Background(), "alice", "Alice@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, created.UID, res.User.UID)

	repo.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	hashed, err := password.GetHash("secret123")
	require.NoError(t, err)

	user := &models.User{
		UID:          "c6c557f1-6a6a-4c6f-9203-e9d9a37f0002",
		Email:        "bob@example.com",
		Username:     "bob",
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}

	tests := []struct {
		name      string
		email     string
		pass      string
		setupMock func(*MockUserRepository)
		wantErr   string
	}{
		{
			name:  "successful login",
			email: "bob@example.com",
			pass:  "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(user, nil)
			},
		},
		{
			name:  "unknown email",
			email: "nobody@example.com",
			pass:  "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrNoRows)
			},
			wantErr: "invalid credentials",
		},
		{
			name:  "wrong password",
			email: "bob@example.com",
			pass:  "wrongpass",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(user, nil)
			},
			wantErr: "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			service := NewAuthService(repo, newTestMaker())

			res, err := service.Login(context.Background(), tt.email, tt.pass)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, 401, apperr.StatusOf(err))
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, res.Token)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoginBlockedUserSucceeds(t *testing.T) {
	// заблокированный пользователь может войти, отказ он получает
	// на первом же аутентифицированном запросе
	hashed, err := password.GetHash("secret123")
	require.NoError(t, err)

	blocked := &models.User{
		UID:          "c6c557f1-6a6a-4c6f-9203-e9d9a37f0003",
		Email:        "carol@example.com",
		PasswordHash: hashed,
		Role:         models.RoleUser,
		IsBlocked:    true,
	}

	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", mock.Anything, "carol@example.com").Return(blocked, nil)
	service := NewAuthService(repo, newTestMaker())

	res, err := service.Login(context.Background(), "carol@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestAuthenticate(t *testing.T) {
	maker := newTestMaker()
	activeUID := "c6c557f1-6a6a-4c6f-9203-e9d9a37f0004"
	blockedUID := "c6c557f1-6a6a-4c6f-9203-e9d9a37f0005"
	goneUID := "c6c557f1-6a6a-4c6f-9203-e9d9a37f0006"

	tokenFor := func(uid string) string {
		token, err := maker.GenerateToken(uid)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name       string
		token      string
		setupMock  func(*MockUserRepository)
		wantStatus int
		wantBlock  bool
	}{
		{
			name:  "active user",
			token: tokenFor(activeUID),
			setupMock: func(m *MockUserRepository) {
				m.On("GetUser", mock.Anything, activeUID).
					Return(&models.User{UID: activeUID, Role: models.RoleUser}, nil)
			},
		},
		{
			name:       "garbage token",
			token:      "not-a-token",
			setupMock:  func(_ *MockUserRepository) {},
			wantStatus: 401,
		},
		{
			name:  "user deleted",
			token: tokenFor(goneUID),
			setupMock: func(m *MockUserRepository) {
				m.On("GetUser", mock.Anything, goneUID).Return(nil, repository.ErrNoRows)
			},
			wantStatus: 401,
		},
		{
			name:  "blocked user",
			token: tokenFor(blockedUID),
			setupMock: func(m *MockUserRepository) {
				m.On("GetUser", mock.Anything, blockedUID).
					Return(&models.User{UID: blockedUID, Role: models.RoleUser, IsBlocked: true}, nil)
			},
			wantStatus: 403,
			wantBlock:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			service := NewAuthService(repo, maker)

			user, err := service.Authenticate(context.Background(), tt.token)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, apperr.StatusOf(err))
				assert.Equal(t, tt.wantBlock, apperr.IsBlocked(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, activeUID, user.UID)
			}
			repo.AssertExpectations(t)
		})
	}
}
