// Package access resolves who is calling and which owners' records the call
// may touch.
//
// Stores never receive a nullable owner. They receive a Scope built by one of
// two constructors: ScopedTo(owner) or Unscoped(). Unscoped is reachable only
// through the admin branches below.
package access

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("admin access required")
	ErrViewUserMissing = errors.New("viewUser is required for viewMode=user")
)

type Identity struct {
	Username string
	IsAdmin  bool
}

type Scope struct {
	owner string
	all   bool
}

func ScopedTo(owner string) Scope {
	return Scope{owner: owner}
}

func Unscoped() Scope {
	return Scope{all: true}
}

// Owner возвращает владельца; ok=false означает «все владельцы».
func (s Scope) Owner() (string, bool) {
	if s.all {
		return "", false
	}
	return s.owner, true
}

func (s Scope) IsUnscoped() bool {
	return s.all
}

// Allows: запись с данным владельцем видна в этой области.
func (s Scope) Allows(owner string) bool {
	return s.all || s.owner == owner
}

func (s Scope) String() string {
	if s.all {
		return "*"
	}
	return s.owner
}

type ViewMode string

const (
	ViewSelf ViewMode = "self"
	ViewUser ViewMode = "user"
	ViewAll  ViewMode = "all"
)

// ReadScope выбирает область для списков задач.
// Не-админ всегда видит только свои задачи, что бы он ни передал.
func ReadScope(id Identity, mode ViewMode, viewUser string) (Scope, error) {
	if !id.IsAdmin {
		return ScopedTo(id.Username), nil
	}

	switch mode {
	case ViewAll:
		return Unscoped(), nil
	case ViewUser:
		if viewUser == "" {
			return Scope{}, ErrViewUserMissing
		}
		return ScopedTo(viewUser), nil
	default:
		return ScopedTo(id.Username), nil
	}
}

// RecordScope - область для операций над одной задачей по id.
func RecordScope(id Identity) Scope {
	if id.IsAdmin {
		return Unscoped()
	}
	return ScopedTo(id.Username)
}

// TaskOwner определяет владельца новой задачи: админ может создать её
// для любого пользователя, остальные только для себя.
func TaskOwner(id Identity, requested string) string {
	if id.IsAdmin && requested != "" {
		return requested
	}
	return id.Username
}

// NoteScope - заметки планировщика всегда личные, даже для админа.
func NoteScope(id Identity) Scope {
	return ScopedTo(id.Username)
}

func RequireAdmin(id Identity) error {
	if !id.IsAdmin {
		return ErrForbidden
	}
	return nil
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.Username == "" {
		return Identity{}, ErrUnauthenticated
	}
	return id, nil
}
