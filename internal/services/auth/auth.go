// Package auth содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/lib/jwt"
	"github.com/gourav1008/NotesApp/internal/lib/password"
	"github.com/gourav1008/NotesApp/internal/models"
	"github.com/gourav1008/NotesApp/internal/storage/repository"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthResult результат регистрации или входа: токен и данные пользователя.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService отвечает за регистрацию, вход и разрешение токена в пользователя.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью
// "user", затем выпускает для него токен.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (*AuthResult, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Email:        strings.ToLower(email),
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
	}

	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Validation("user with this email or name already exists")
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AuthResult{Token: token, User: created}, nil
}

// Login проверяет учётные данные и выпускает токен. Неизвестный email и
// неверный пароль дают один и тот же ответ, чтобы не раскрывать, какая
// часть пары неверна. Заблокированный пользователь может войти: отказ он
// получит на первом же аутентифицированном запросе.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*AuthResult, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Authenticate разрешает токен в пользователя: проверяет подпись и срок
// действия, затем актуальное состояние учётной записи. Несуществующий
// пользователь — отказ 401, заблокированный — отказ 403 с флагом is_blocked.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*models.User, error) {
	const op = "services.auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.Unauthorized("user not found")
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user.IsBlocked {
		return nil, apperr.Blocked()
	}
	return user, nil
}

// isUniqueViolation распознаёт нарушение уникального ограничения PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
