package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/auth"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/user"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo          UserRepository
	tokens        *auth.TokenManager
	validator     *validation.Validator
	adminPassword string
	hashCost      int
}

type UserOption func(*UserService)

func WithDefaultAdminPassword(password string) UserOption {
	return func(s *UserService) {
		if password != "" {
			s.adminPassword = password
		}
	}
}

func WithHashCost(cost int) UserOption {
	return func(s *UserService) {
		s.hashCost = cost
	}
}

func NewUserService(repo UserRepository, tokens *auth.TokenManager, v *validation.Validator, options ...UserOption) *UserService {
	s := &UserService{
		repo:          repo,
		tokens:        tokens,
		validator:     v,
		adminPassword: user.DefaultAdminPassword,
		hashCost:      bcrypt.DefaultCost,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *user.User
}

// CreateUser проверяет вход до любого обращения к хранилищу.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*user.User, error) {
	in.Username = strings.TrimSpace(in.Username)

	fieldErrs, err := s.validator.Check(in)
	if err != nil {
		return nil, err
	}
	if len(fieldErrs) > 0 {
		return nil, newFieldsError(fieldErrs)
	}

	return s.create(ctx, in.Username, in.Password, in.IsAdmin)
}

func (s *UserService) create(ctx context.Context, username, password string, isAdmin bool) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, NewValidationError("password", "must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("хэширование пароля: %w", err)
	}

	u := &user.User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, NewConflict("Username already exists", ToDetail("username", username))
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	logger.Info("Service: Пользователь создан", zap.String("username", username), zap.Bool("is_admin", isAdmin))
	return u.Public(), nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("User", username)
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}

// ValidatePassword сравнивает через bcrypt, открытый текст нигде не хранится.
func (s *UserService) ValidatePassword(u *user.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*user.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}

	res := make([]*user.User, 0, len(users))
	for _, u := range users {
		res = append(res, u.Public())
	}
	return res, nil
}

// EnsureDefaultAdmin идемпотентна: гонка двух вызовов заканчивается
// ErrAlreadyExists у проигравшего, что считается успехом.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) error {
	exists, err := s.repo.ExistsByUsername(ctx, user.DefaultAdminUsername)
	if err != nil {
		return fmt.Errorf("проверка админа: %w", err)
	}
	if exists {
		return nil
	}

	_, err = s.create(ctx, user.DefaultAdminUsername, s.adminPassword, true)
	var busErr *BusinessError
	if errors.As(err, &busErr) && busErr.Code == CodeConflict {
		return nil
	}
	if err != nil {
		return err
	}

	logger.Warn("Service: Создан администратор по умолчанию, смените пароль",
		zap.String("username", user.DefaultAdminUsername))
	return nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if err := s.EnsureDefaultAdmin(ctx); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Неудачный вход", zap.String("username", username))
			return nil, NewUnauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	if !s.ValidatePassword(u, password) {
		logger.Info("Service: Неудачный вход", zap.String("username", username))
		return nil, NewUnauthorized("Invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(access.Identity{Username: u.Username, IsAdmin: u.IsAdmin})
	if err != nil {
		return nil, fmt.Errorf("выпуск токена: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u.Public()}, nil
}
