package inmemory

import (
	"context"
	"sync"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	repo "taskBoard/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStorage struct {
	storage map[primitive.ObjectID]*task.Task
	mtx     *sync.RWMutex
	ids     []primitive.ObjectID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[primitive.ObjectID]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []primitive.ObjectID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: in-memory хранилище задач доступно")
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if taskToCreate.ID.IsZero() {
		taskToCreate.ID = primitive.NewObjectID()
	}
	if taskToCreate.CreatedAt.IsZero() {
		taskToCreate.CreatedAt = time.Now()
		taskToCreate.UpdatedAt = taskToCreate.CreatedAt
	}

	s.storage[taskToCreate.ID] = taskToCreate.Clone()
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

// List отдаёт копии; порядок: дата и время создания по убыванию,
// при равенстве - более поздняя вставка первой.
func (s *TaskStorage) List(ctx context.Context, scope access.Scope, filters task.Filters) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for i := len(s.ids) - 1; i >= 0; i-- {
		t := s.storage[s.ids[i]]
		if !scope.Allows(t.UserID) || !filters.Match(t) {
			continue
		}
		res = append(res, t.Clone())
	}

	task.SortNewestFirst(res)
	return res, nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id primitive.ObjectID, scope access.Scope) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.storage[id]
	if !ok || !scope.Allows(t.UserID) {
		return nil, repo.ErrNotFound
	}
	return t.Clone(), nil
}

func (s *TaskStorage) Update(ctx context.Context, id primitive.ObjectID, patch task.Patch, scope access.Scope) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.storage[id]
	if !ok || !scope.Allows(t.UserID) {
		return nil, repo.ErrNotFound
	}

	patch.Apply(t)
	t.UpdatedAt = time.Now()

	return t.Clone(), nil
}

func (s *TaskStorage) Delete(ctx context.Context, id primitive.ObjectID, scope access.Scope) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.storage[id]
	if !ok || !scope.Allows(t.UserID) {
		return false, nil
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return true, nil
}

func (s *TaskStorage) CountByStatus(ctx context.Context, scope access.Scope, filters task.Filters) (map[task.Status]int, error) {
	tasks, err := s.List(ctx, scope, filters)
	if err != nil {
		return nil, err
	}
	return task.StatusCounts(tasks), nil
}
