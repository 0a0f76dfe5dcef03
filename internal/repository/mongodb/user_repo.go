package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/user"
	repo "taskBoard/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type UserRepo struct {
	coll *mongo.Collection
}

// Create полагается на уникальный индекс username.
func (r *UserRepo) Create(ctx context.Context, userToCreate *user.User) error {
	if userToCreate.ID.IsZero() {
		userToCreate.ID = primitive.NewObjectID()
	}
	if userToCreate.CreatedAt.IsZero() {
		userToCreate.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, userToCreate); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logger.Warn("Repository: Пользователь уже существует", zap.String("username", userToCreate.Username))
			return repo.ErrAlreadyExists
		}
		logger.Error("Repository: Не удалось добавить пользователя", err)
		return fmt.Errorf("добавление пользователя: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return &u, nil
}

// List не запрашивает поле password.
func (r *UserRepo) List(ctx context.Context) ([]*user.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"password": 0}).
			SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		logger.Error("Repository: Не удалось получить пользователей", err)
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}

	users := []*user.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("чтение пользователей: %w", err)
	}
	return users, nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		logger.Error("Repository: Не удалось проверить пользователя", err)
		return false, fmt.Errorf("проверка пользователя: %w", err)
	}
	return count > 0, nil
}
