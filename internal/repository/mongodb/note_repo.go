package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/note"
	repo "taskBoard/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NoteRepo struct {
	coll *mongo.Collection
}

func (r *NoteRepo) Create(ctx context.Context, noteToCreate *note.WeeklyNote) error {
	if noteToCreate.ID.IsZero() {
		noteToCreate.ID = primitive.NewObjectID()
	}
	if noteToCreate.CreatedAt.IsZero() {
		noteToCreate.CreatedAt = time.Now()
		noteToCreate.UpdatedAt = noteToCreate.CreatedAt
	}

	if _, err := r.coll.InsertOne(ctx, noteToCreate); err != nil {
		logger.Error("Repository: Не удалось добавить заметку", err)
		return fmt.Errorf("добавление заметки: %w", err)
	}
	return nil
}

func (r *NoteRepo) ListByWeek(ctx context.Context, owner, weekStart string) ([]*note.WeeklyNote, error) {
	start := time.Now()
	defer warnIfSlow("notes.list", start)

	cursor, err := r.coll.Find(ctx,
		bson.M{"userId": owner, "weekStart": weekStart},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		logger.Error("Repository: Не удалось получить заметки", err)
		return nil, fmt.Errorf("получение заметок: %w", err)
	}

	notes := []*note.WeeklyNote{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("чтение заметок: %w", err)
	}
	return notes, nil
}

func (r *NoteRepo) Update(ctx context.Context, id primitive.ObjectID, patch note.Patch, owner string) (*note.WeeklyNote, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Done != nil {
		set["done"] = *patch.Done
	}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}

	var n note.WeeklyNote
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "userId": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить заметку", err)
		return nil, fmt.Errorf("обновление заметки: %w", err)
	}
	return &n, nil
}

func (r *NoteRepo) Delete(ctx context.Context, id primitive.ObjectID, owner string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": owner})
	if err != nil {
		logger.Error("Repository: Не удалось удалить заметку", err)
		return false, fmt.Errorf("удаление заметки: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *NoteRepo) ClearDay(ctx context.Context, owner, dayOfWeek, weekStart string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"userId": owner, "dayOfWeek": dayOfWeek, "weekStart": weekStart})
}

func (r *NoteRepo) ClearWeek(ctx context.Context, owner, weekStart string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"userId": owner, "weekStart": weekStart})
}

func (r *NoteRepo) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		logger.Error("Repository: Не удалось очистить заметки", err)
		return 0, fmt.Errorf("очистка заметок: %w", err)
	}
	return res.DeletedCount, nil
}
