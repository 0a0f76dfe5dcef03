package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/user"
	repo "taskBoard/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type UserRepo struct {
	pool *pgxpool.Pool
}

func scanUser(row scanner) (*user.User, error) {
	var (
		id string
		u  user.User
	)
	if err := row.Scan(&id, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("некорректный id %q: %w", id, err)
	}
	u.ID = oid
	return &u, nil
}

// Create опирается на уникальный индекс по username: проверка и вставка
// выполняются одним запросом.
func (r *UserRepo) Create(ctx context.Context, userToCreate *user.User) error {
	if userToCreate.ID.IsZero() {
		userToCreate.ID = primitive.NewObjectID()
	}
	if userToCreate.CreatedAt.IsZero() {
		userToCreate.CreatedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, is_admin, created_at) VALUES ($1, $2, $3, $4, $5)`,
		userToCreate.ID.Hex(),
		userToCreate.Username,
		userToCreate.PasswordHash,
		userToCreate.IsAdmin,
		userToCreate.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			logger.Warn("Repository: Пользователь уже существует", zap.String("username", userToCreate.Username))
			return repo.ErrAlreadyExists
		}
		logger.Error("Repository: Не удалось добавить пользователя", err)
		return fmt.Errorf("добавление пользователя: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = $1`,
		username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}

// List не выбирает колонку с хэшем пароля.
func (r *UserRepo) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, '' AS password_hash, is_admin, created_at FROM users ORDER BY created_at, id`)
	if err != nil {
		logger.Error("Repository: Не удалось получить пользователей", err)
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование пользователя: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return users, nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		logger.Error("Repository: Не удалось проверить пользователя", err)
		return false, fmt.Errorf("проверка пользователя: %w", err)
	}
	return exists, nil
}
