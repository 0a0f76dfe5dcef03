package inmemory

import (
	"context"
	"sync"
	"time"

	"taskBoard/internal/models/note"
	repo "taskBoard/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NoteStorage struct {
	storage map[primitive.ObjectID]*note.WeeklyNote
	mtx     *sync.RWMutex
	ids     []primitive.ObjectID
}

func NewNoteStorage() *NoteStorage {
	return &NoteStorage{
		storage: make(map[primitive.ObjectID]*note.WeeklyNote),
		mtx:     &sync.RWMutex{},
		ids:     []primitive.ObjectID{},
	}
}

func (s *NoteStorage) Create(ctx context.Context, noteToCreate *note.WeeklyNote) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if noteToCreate.ID.IsZero() {
		noteToCreate.ID = primitive.NewObjectID()
	}
	if noteToCreate.CreatedAt.IsZero() {
		noteToCreate.CreatedAt = time.Now()
		noteToCreate.UpdatedAt = noteToCreate.CreatedAt
	}

	c := *noteToCreate
	s.storage[c.ID] = &c
	s.ids = append(s.ids, c.ID)
	return nil
}

// ListByWeek - в порядке создания, как заметки появляются на карточке дня.
func (s *NoteStorage) ListByWeek(ctx context.Context, owner, weekStart string) ([]*note.WeeklyNote, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*note.WeeklyNote{}
	for _, id := range s.ids {
		n := s.storage[id]
		if n.UserID != owner || n.WeekStart != weekStart {
			continue
		}
		c := *n
		res = append(res, &c)
	}
	return res, nil
}

func (s *NoteStorage) Update(ctx context.Context, id primitive.ObjectID, patch note.Patch, owner string) (*note.WeeklyNote, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	n, ok := s.storage[id]
	if !ok || n.UserID != owner {
		return nil, repo.ErrNotFound
	}

	patch.Apply(n)
	n.UpdatedAt = time.Now()

	c := *n
	return &c, nil
}

func (s *NoteStorage) Delete(ctx context.Context, id primitive.ObjectID, owner string) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	n, ok := s.storage[id]
	if !ok || n.UserID != owner {
		return false, nil
	}

	s.removeLocked(id)
	return true, nil
}

func (s *NoteStorage) ClearDay(ctx context.Context, owner, dayOfWeek, weekStart string) (int64, error) {
	return s.clear(func(n *note.WeeklyNote) bool {
		return n.UserID == owner && n.DayOfWeek == dayOfWeek && n.WeekStart == weekStart
	}), nil
}

func (s *NoteStorage) ClearWeek(ctx context.Context, owner, weekStart string) (int64, error) {
	return s.clear(func(n *note.WeeklyNote) bool {
		return n.UserID == owner && n.WeekStart == weekStart
	}), nil
}

func (s *NoteStorage) clear(match func(*note.WeeklyNote) bool) int64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	kept := s.ids[:0]
	var deleted int64
	for _, id := range s.ids {
		if match(s.storage[id]) {
			delete(s.storage, id)
			deleted++
			continue
		}
		kept = append(kept, id)
	}
	s.ids = kept
	return deleted
}

func (s *NoteStorage) removeLocked(id primitive.ObjectID) {
	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			return
		}
	}
}
