package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	repo "taskBoard/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type TaskRepo struct {
	coll   *mongo.Collection
	health func(context.Context) error
}

var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func scopeFilter(filter bson.M, scope access.Scope) bson.M {
	if owner, ok := scope.Owner(); ok {
		filter["userId"] = owner
	}
	return filter
}

func taskFilter(scope access.Scope, f task.Filters) bson.M {
	filter := scopeFilter(bson.M{}, scope)

	if f.HasRange() {
		filter["date"] = bson.M{"$gte": f.StartDate, "$lte": f.EndDate}
	} else if f.Date != "" {
		filter["date"] = f.Date
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.StatusID != 0 {
		filter["statusId"] = f.StatusID
	}
	return filter
}

func (r *TaskRepo) HealthCheck(ctx context.Context) error {
	return r.health(ctx)
}

func (r *TaskRepo) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()
	defer warnIfSlow("tasks.create", start)

	if taskToCreate.ID.IsZero() {
		taskToCreate.ID = primitive.NewObjectID()
	}
	if taskToCreate.CreatedAt.IsZero() {
		taskToCreate.CreatedAt = time.Now()
		taskToCreate.UpdatedAt = taskToCreate.CreatedAt
	}

	if _, err := r.coll.InsertOne(ctx, taskToCreate); err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err)
		return fmt.Errorf("добавление задачи: %w", err)
	}
	return nil
}

func (r *TaskRepo) List(ctx context.Context, scope access.Scope, filters task.Filters) ([]*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("tasks.list", start)

	cursor, err := r.coll.Find(ctx, taskFilter(scope, filters), options.Find().SetSort(newestFirst))
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	tasks := []*task.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		logger.Error("Repository: Ошибка чтения курсора", err)
		return nil, fmt.Errorf("чтение задач: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id primitive.ObjectID, scope access.Scope) (*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("tasks.get", start)

	var t task.Task
	err := r.coll.FindOne(ctx, scopeFilter(bson.M{"_id": id}, scope)).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.String("task_id", id.Hex()))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return &t, nil
}

func taskSet(patch task.Patch) bson.M {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Subcategory != nil {
		set["subcategory"] = *patch.Subcategory
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.StatusID != nil {
		set["statusId"] = *patch.StatusID
	}
	if patch.StartTime != nil {
		set["startTime"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		set["endTime"] = *patch.EndTime
	}
	if patch.CarriedOver != nil {
		set["carriedOver"] = *patch.CarriedOver
	}
	if patch.DurationMinutes != nil {
		set["durationMinutes"] = *patch.DurationMinutes
	}
	return set
}

func (r *TaskRepo) Update(ctx context.Context, id primitive.ObjectID, patch task.Patch, scope access.Scope) (*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("tasks.update", start)

	var t task.Task
	err := r.coll.FindOneAndUpdate(ctx,
		scopeFilter(bson.M{"_id": id}, scope),
		bson.M{"$set": taskSet(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err, zap.String("task_id", id.Hex()))
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return &t, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id primitive.ObjectID, scope access.Scope) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, scopeFilter(bson.M{"_id": id}, scope))
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.String("task_id", id.Hex()))
		return false, fmt.Errorf("удаление задачи: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *TaskRepo) CountByStatus(ctx context.Context, scope access.Scope, filters task.Filters) (map[task.Status]int, error) {
	start := time.Now()
	defer warnIfSlow("tasks.count_by_status", start)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: taskFilter(scope, filters)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$statusId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Error("Repository: Не удалось посчитать задачи", err)
		return nil, fmt.Errorf("подсчёт задач: %w", err)
	}

	var groups []struct {
		Status task.Status `bson:"_id"`
		Count  int         `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("чтение агрегата: %w", err)
	}

	counts := task.StatusCounts(nil)
	for _, g := range groups {
		counts[g.Status] = g.Count
	}
	return counts, nil
}
