package service

import (
	"context"

	"taskBoard/internal/access"
	"taskBoard/internal/models/note"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.Task) error
	List(context.Context, access.Scope, task.Filters) ([]*task.Task, error)
	GetByID(context.Context, primitive.ObjectID, access.Scope) (*task.Task, error)
	Update(context.Context, primitive.ObjectID, task.Patch, access.Scope) (*task.Task, error)
	Delete(context.Context, primitive.ObjectID, access.Scope) (bool, error)
	CountByStatus(context.Context, access.Scope, task.Filters) (map[task.Status]int, error)
}

// NoteRepository: заметки всегда принадлежат одному владельцу, админского
// обхода для них нет.
type NoteRepository interface {
	Create(context.Context, *note.WeeklyNote) error
	ListByWeek(ctx context.Context, owner, weekStart string) ([]*note.WeeklyNote, error)
	Update(ctx context.Context, id primitive.ObjectID, patch note.Patch, owner string) (*note.WeeklyNote, error)
	Delete(ctx context.Context, id primitive.ObjectID, owner string) (bool, error)
	ClearDay(ctx context.Context, owner, dayOfWeek, weekStart string) (int64, error)
	ClearWeek(ctx context.Context, owner, weekStart string) (int64, error)
}

type UserRepository interface {
	Create(context.Context, *user.User) error
	FindByUsername(context.Context, string) (*user.User, error)
	List(context.Context) ([]*user.User, error)
	ExistsByUsername(context.Context, string) (bool, error)
}
