package dto

import (
	"encoding/json"
	"time"

	"taskBoard/internal/models/note"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"
	"taskBoard/internal/service"
)

type CreateTaskRequest struct {
	UserID      string `json:"userId"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StatusID    int    `json:"statusId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// ToInput: владелец передаётся отдельно, он уже разрешён по сессии.
func (r CreateTaskRequest) ToInput(owner string) service.CreateTaskInput {
	return service.CreateTaskInput{
		UserID:      owner,
		Date:        r.Date,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Title:       r.Title,
		Description: r.Description,
		StatusID:    r.StatusID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

// UpdateTaskRequest не содержит _id, userId, createdAt, updatedAt и
// durationMinutes: такие поля из тела молча отбрасываются декодером.
type UpdateTaskRequest struct {
	Date        *string `json:"date,omitempty"`
	Category    *string `json:"category,omitempty"`
	Subcategory *string `json:"subcategory,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StatusID    *int    `json:"statusId,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	CarriedOver *bool   `json:"carriedOver,omitempty"`
}

func (r UpdateTaskRequest) ToInput() service.UpdateTaskInput {
	return service.UpdateTaskInput{
		Date:        r.Date,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Title:       r.Title,
		Description: r.Description,
		StatusID:    r.StatusID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		CarriedOver: r.CarriedOver,
	}
}

type TaskResponse struct {
	ID              string    `json:"_id"`
	UserID          string    `json:"userId"`
	Date            string    `json:"date"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StatusID        int       `json:"statusId"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	CarriedOver     *bool     `json:"carriedOver,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:              t.ID.Hex(),
		UserID:          t.UserID,
		Date:            t.Date,
		Category:        t.Category,
		Subcategory:     t.Subcategory,
		Title:           t.Title,
		Description:     t.Description,
		StatusID:        int(t.StatusID),
		StartTime:       t.StartTime,
		EndTime:         t.EndTime,
		DurationMinutes: t.DurationMinutes,
		CarriedOver:     t.CarriedOver,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type CreateNoteRequest struct {
	DayOfWeek string `json:"dayOfWeek"`
	Text      string `json:"text"`
	WeekStart string `json:"weekStart"`
}

func (r CreateNoteRequest) ToInput() service.CreateNoteInput {
	return service.CreateNoteInput{
		DayOfWeek: r.DayOfWeek,
		Text:      r.Text,
		WeekStart: r.WeekStart,
	}
}

// UpdateNoteRequest держит done сырым: флаг применяется, только если
// клиент прислал именно boolean.
type UpdateNoteRequest struct {
	ID   string          `json:"id"`
	Done json.RawMessage `json:"done,omitempty"`
	Text *string         `json:"text,omitempty"`
}

func (r UpdateNoteRequest) ToInput() service.UpdateNoteInput {
	in := service.UpdateNoteInput{Text: r.Text}
	var done bool
	if len(r.Done) > 0 && json.Unmarshal(r.Done, &done) == nil {
		in.Done = &done
	}
	return in
}

type NoteResponse struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	DayOfWeek string    `json:"dayOfWeek"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	WeekStart string    `json:"weekStart"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromNote(n *note.WeeklyNote) NoteResponse {
	return NoteResponse{
		ID:        n.ID.Hex(),
		UserID:    n.UserID,
		DayOfWeek: n.DayOfWeek,
		Text:      n.Text,
		Done:      n.Done,
		WeekStart: n.WeekStart,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func FromNoteList(notes []*note.WeeklyNote) []NoteResponse {
	result := make([]NoteResponse, len(notes))
	for i, n := range notes {
		result[i] = FromNote(n)
	}
	return result
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (r CreateUserRequest) ToInput() service.CreateUserInput {
	return service.CreateUserInput{
		Username: r.Username,
		Password: r.Password,
		IsAdmin:  r.IsAdmin,
	}
}

// UserResponse никогда не содержит пароль или его хэш.
type UserResponse struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func FromUserList(users []*user.User) []UserResponse {
	result := make([]UserResponse, len(users))
	for i, u := range users {
		result[i] = FromUser(u)
	}
	return result
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionUser struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      SessionUser `json:"user"`
}
