package inmemory

import (
	"context"
	"sync"
	"time"

	"taskBoard/internal/models/user"
	repo "taskBoard/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStorage struct {
	byName map[string]*user.User
	mtx    *sync.RWMutex
	names  []string
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		byName: make(map[string]*user.User),
		mtx:    &sync.RWMutex{},
		names:  []string{},
	}
}

// Create атомарно проверяет уникальность имени и сохраняет пользователя.
func (s *UserStorage) Create(ctx context.Context, userToCreate *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.byName[userToCreate.Username]; exists {
		return repo.ErrAlreadyExists
	}

	if userToCreate.ID.IsZero() {
		userToCreate.ID = primitive.NewObjectID()
	}
	if userToCreate.CreatedAt.IsZero() {
		userToCreate.CreatedAt = time.Now()
	}

	c := *userToCreate
	s.byName[c.Username] = &c
	s.names = append(s.names, c.Username)
	return nil
}

func (s *UserStorage) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.byName[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *u
	return &c, nil
}

// List возвращает пользователей без хэшей паролей.
func (s *UserStorage) List(ctx context.Context) ([]*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*user.User, 0, len(s.names))
	for _, name := range s.names {
		res = append(res, s.byName[name].Public())
	}
	return res, nil
}

func (s *UserStorage) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, ok := s.byName[username]
	return ok, nil
}
