package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	repo "taskBoard/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const taskColumns = `id, user_id, date, category, subcategory, title, description,
	status_id, start_time, end_time, duration_minutes, carried_over, created_at, updated_at`

type TaskRepo struct {
	pool *pgxpool.Pool
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		id string
		t  task.Task
	)
	err := row.Scan(
		&id,
		&t.UserID,
		&t.Date,
		&t.Category,
		&t.Subcategory,
		&t.Title,
		&t.Description,
		&t.StatusID,
		&t.StartTime,
		&t.EndTime,
		&t.DurationMinutes,
		&t.CarriedOver,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.ID, err = primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("некорректный id %q: %w", id, err)
	}
	return &t, nil
}

// whereBuilder собирает условия и позиционные аргументы запроса.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) scope(scope access.Scope) {
	if owner, ok := scope.Owner(); ok {
		w.add("user_id = $%d", owner)
	}
}

func (w *whereBuilder) filters(f task.Filters) {
	if f.HasRange() {
		w.add("date >= $%d", f.StartDate)
		w.add("date <= $%d", f.EndDate)
	} else if f.Date != "" {
		w.add("date = $%d", f.Date)
	}
	if f.Category != "" {
		w.add("category = $%d", f.Category)
	}
	if f.StatusID != 0 {
		w.add("status_id = $%d", f.StatusID)
	}
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (r *TaskRepo) HealthCheck(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
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

	query := `INSERT INTO tasks (` + taskColumns + `)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		taskToCreate.ID.Hex(),
		taskToCreate.UserID,
		taskToCreate.Date,
		taskToCreate.Category,
		taskToCreate.Subcategory,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.StatusID,
		taskToCreate.StartTime,
		taskToCreate.EndTime,
		taskToCreate.DurationMinutes,
		taskToCreate.CarriedOver,
		taskToCreate.CreatedAt,
		taskToCreate.UpdatedAt,
	)
	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}
	return nil
}

func (r *TaskRepo) List(ctx context.Context, scope access.Scope, filters task.Filters) ([]*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("tasks.list", start)

	var where whereBuilder
	where.scope(scope)
	where.filters(filters)

	// id ObjectID растёт со временем вставки, поэтому разрешает равные created_at
	query := `SELECT ` + taskColumns + ` FROM tasks` + where.String() +
		` ORDER BY date DESC, created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id primitive.ObjectID, scope access.Scope) (*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("tasks.get", start)

	var where whereBuilder
	where.add("id = $%d", id.Hex())
	where.scope(scope)

	query := `SELECT ` + taskColumns + ` FROM tasks` + where.String()

	t, err := scanTask(r.pool.QueryRow(ctx, query, where.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

// Update пишет только поля патча; одновременные обновления разных полей
// не затирают друг друга.
func (r *TaskRepo) Update(ctx context.Context, id primitive.ObjectID, patch task.Patch, scope access.Scope) (*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("tasks.update", start)

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Date != nil {
		set("date", *patch.Date)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Subcategory != nil {
		set("subcategory", *patch.Subcategory)
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.StatusID != nil {
		set("status_id", *patch.StatusID)
	}
	if patch.StartTime != nil {
		set("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		set("end_time", *patch.EndTime)
	}
	if patch.CarriedOver != nil {
		set("carried_over", *patch.CarriedOver)
	}
	if patch.DurationMinutes != nil {
		set("duration_minutes", *patch.DurationMinutes)
	}
	set("updated_at", time.Now())

	where := whereBuilder{args: args}
	where.add("id = $%d", id.Hex())
	where.scope(scope)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + where.String() +
		` RETURNING ` + taskColumns

	t, err := scanTask(r.pool.QueryRow(ctx, query, where.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err, zap.String("task_id", id.Hex()))
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return t, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id primitive.ObjectID, scope access.Scope) (bool, error) {
	start := time.Now()
	defer warnIfSlow("tasks.delete", start)

	var where whereBuilder
	where.add("id = $%d", id.Hex())
	where.scope(scope)

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks`+where.String(), where.args...)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.String("task_id", id.Hex()))
		return false, fmt.Errorf("удаление задачи: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TaskRepo) CountByStatus(ctx context.Context, scope access.Scope, filters task.Filters) (map[task.Status]int, error) {
	start := time.Now()
	defer warnIfSlow("tasks.count_by_status", start)

	var where whereBuilder
	where.scope(scope)
	where.filters(filters)

	query := `SELECT status_id, COUNT(*) FROM tasks` + where.String() + ` GROUP BY status_id`

	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		logger.Error("Repository: Не удалось посчитать задачи", err)
		return nil, fmt.Errorf("подсчёт задач: %w", err)
	}
	defer rows.Close()

	counts := task.StatusCounts(nil)
	for rows.Next() {
		var (
			status task.Status
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("сканирование счётчика: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return counts, nil
}
