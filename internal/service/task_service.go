package service

import (
	"context"
	"errors"
	"fmt"

	"taskBoard/internal/access"
	"taskBoard/internal/catalog"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики задач

type TaskService struct {
	repo      TaskRepository
	validator *validation.Validator
}

func NewTaskService(repo TaskRepository, v *validation.Validator) *TaskService {
	return &TaskService{
		repo:      repo,
		validator: v,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *TaskService) check(in any) error {
	fieldErrs, err := s.validator.Check(in)
	if err != nil {
		return err
	}
	if len(fieldErrs) > 0 {
		return newFieldsError(fieldErrs)
	}
	return nil
}

// warnSubcategory только пишет в лог: рассинхрон категории и подкатегории
// сервер не отклоняет.
func warnSubcategory(category, subcategory string) {
	if !catalog.IsSubcategory(category, subcategory) {
		logger.Warn("Service: Подкатегория не относится к категории",
			zap.String("category", category),
			zap.String("subcategory", subcategory))
	}
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*task.Task, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	status := task.Status(in.StatusID)
	if status == 0 {
		status = task.StatusToDo
	}

	warnSubcategory(in.Category, in.Subcategory)

	t := &task.Task{
		UserID:          in.UserID,
		Date:            in.Date,
		Category:        in.Category,
		Subcategory:     in.Subcategory,
		Title:           in.Title,
		Description:     in.Description,
		StatusID:        status,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationMinutes: task.CalculateDuration(in.StartTime, in.EndTime),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", t.ID.Hex()),
		zap.String("owner", t.UserID),
		zap.Int("duration_minutes", t.DurationMinutes))
	return t, nil
}

func (s *TaskService) ListTasks(ctx context.Context, scope access.Scope, filters task.Filters) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx, scope, filters)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id primitive.ObjectID, scope access.Scope) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id, scope)
	if err != nil {
		return nil, s.notFoundOr(err, id, "получение задачи")
	}
	return t, nil
}

// UpdateTask применяет патч. Если меняется время, длительность
// пересчитывается по сохранённому времени с наложенным патчем.
func (s *TaskService) UpdateTask(ctx context.Context, id primitive.ObjectID, in UpdateTaskInput, scope access.Scope) (*task.Task, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	patch := in.Patch()
	if patch.IsEmpty() {
		return nil, NewValidationError("body", "no updatable fields")
	}

	if patch.TouchesSchedule() {
		existing, err := s.repo.GetByID(ctx, id, scope)
		if err != nil {
			return nil, s.notFoundOr(err, id, "получение задачи")
		}
		start, end := patch.MergedSchedule(existing)
		duration := task.CalculateDuration(start, end)
		patch.DurationMinutes = &duration

		if patch.Category != nil || patch.Subcategory != nil {
			category, subcategory := existing.Category, existing.Subcategory
			if patch.Category != nil {
				category = *patch.Category
			}
			if patch.Subcategory != nil {
				subcategory = *patch.Subcategory
			}
			warnSubcategory(category, subcategory)
		}
	} else if patch.Category != nil && patch.Subcategory != nil {
		warnSubcategory(*patch.Category, *patch.Subcategory)
	}

	updated, err := s.repo.Update(ctx, id, patch, scope)
	if err != nil {
		return nil, s.notFoundOr(err, id, "обновление задачи")
	}

	logger.Info("Service: Задача обновлена", zap.String("task_id", id.Hex()), zap.String("scope", scope.String()))
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id primitive.ObjectID, scope access.Scope) error {
	deleted, err := s.repo.Delete(ctx, id, scope)
	if err != nil {
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if !deleted {
		logger.Info("Service: Задача не найдена", zap.String("target_id", id.Hex()))
		return NewNotFound("Task", id.Hex())
	}

	logger.Info("Service: Задача удалена", zap.String("task_id", id.Hex()), zap.String("scope", scope.String()))
	return nil
}

func (s *TaskService) Summary(ctx context.Context, scope access.Scope, filters task.Filters) (task.Summary, error) {
	tasks, err := s.repo.List(ctx, scope, filters)
	if err != nil {
		return task.Summary{}, fmt.Errorf("сводка задач: %w", err)
	}
	return task.Summarize(tasks), nil
}

func (s *TaskService) CountByStatus(ctx context.Context, scope access.Scope, filters task.Filters) (map[task.Status]int, error) {
	counts, err := s.repo.CountByStatus(ctx, scope, filters)
	if err != nil {
		return nil, fmt.Errorf("подсчёт задач по статусам: %w", err)
	}
	return counts, nil
}

func (s *TaskService) notFoundOr(err error, id primitive.ObjectID, op string) error {
	if errors.Is(err, repo.ErrNotFound) {
		logger.Info("Service: Задача не найдена", zap.String("target_id", id.Hex()))
		return NewNotFound("Task", id.Hex())
	}
	return fmt.Errorf("%s: %w", op, err)
}
