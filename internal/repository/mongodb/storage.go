package mongodb

import (
	"context"
	"fmt"
	"time"

	"taskBoard/internal/config"
	"taskBoard/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
	notesCollection = "weeklyNotes"

	slowQuery = 100 * time.Millisecond
)

// Storage держит единственный клиент MongoDB процесса.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(ctx context.Context, cfg config.MongoConfig) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		logger.Error("Repository: Ошибка подключения к MongoDB", err)
		return nil, fmt.Errorf("подключение к mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	s := &Storage{client: client, db: client.Database(cfg.Database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Repository: Успешное создание подключения к MongoDB", zap.String("database", cfg.Database))
	return s, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Error("Repository: Не удалось создать индекс пользователей", err)
		return fmt.Errorf("индекс users.username: %w", err)
	}

	_, err = s.db.Collection(tasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		logger.Error("Repository: Не удалось создать индекс задач", err)
		return fmt.Errorf("индекс tasks: %w", err)
	}

	_, err = s.db.Collection(notesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "weekStart", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		logger.Error("Repository: Не удалось создать индекс заметок", err)
		return fmt.Errorf("индекс weeklyNotes: %w", err)
	}
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		logger.Error("Repository: Ошибка отключения от MongoDB", err)
		return fmt.Errorf("отключение от mongo: %w", err)
	}
	logger.Info("Repository: Закрытие соединения MongoDB")
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Tasks() *TaskRepo {
	return &TaskRepo{coll: s.db.Collection(tasksCollection), health: s.HealthCheck}
}

func (s *Storage) Notes() *NoteRepo {
	return &NoteRepo{coll: s.db.Collection(notesCollection)}
}

func (s *Storage) Users() *UserRepo {
	return &UserRepo{coll: s.db.Collection(usersCollection)}
}

func warnIfSlow(op string, start time.Time) {
	if elapsed := time.Since(start); elapsed > slowQuery {
		logger.Warn("Repository: Медленный запрос", zap.String("op", op), zap.Duration("ms", elapsed))
	}
}
