package handlers

import (
	"context"

	"taskBoard/internal/access"
	"taskBoard/internal/models/note"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"
	"taskBoard/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskService interface {
	HealthCheck(context.Context) error
	CreateTask(context.Context, service.CreateTaskInput) (*task.Task, error)
	ListTasks(context.Context, access.Scope, task.Filters) ([]*task.Task, error)
	GetTask(context.Context, primitive.ObjectID, access.Scope) (*task.Task, error)
	UpdateTask(context.Context, primitive.ObjectID, service.UpdateTaskInput, access.Scope) (*task.Task, error)
	DeleteTask(context.Context, primitive.ObjectID, access.Scope) error
	Summary(context.Context, access.Scope, task.Filters) (task.Summary, error)
}

type NoteService interface {
	CreateNote(context.Context, string, service.CreateNoteInput) (*note.WeeklyNote, error)
	ListWeek(context.Context, string, string) ([]*note.WeeklyNote, error)
	UpdateNote(context.Context, string, primitive.ObjectID, service.UpdateNoteInput) (*note.WeeklyNote, error)
	DeleteNote(context.Context, string, primitive.ObjectID) error
	ClearDay(context.Context, string, string, string) (int64, error)
}

type UserService interface {
	CreateUser(context.Context, service.CreateUserInput) (*user.User, error)
	ListUsers(context.Context) ([]*user.User, error)
	Login(context.Context, string, string) (*service.LoginResult, error)
}

var (
	_ TaskService = (*service.TaskService)(nil)
	_ NoteService = (*service.NoteService)(nil)
	_ UserService = (*service.UserService)(nil)
)
