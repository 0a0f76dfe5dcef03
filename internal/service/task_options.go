package service

import (
	"taskBoard/internal/models/task"
)

// CreateTaskInput - поля новой задачи. UserID уже разрешён через access.TaskOwner.
type CreateTaskInput struct {
	UserID      string `json:"userId" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Category    string `json:"category" validate:"required"`
	Subcategory string `json:"subcategory" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StatusID    int    `json:"statusId" validate:"omitempty,gte=1,lte=4"`
	StartTime   string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime     string `json:"endTime" validate:"required,datetime=15:04"`
}

// UpdateTaskInput - частичное обновление. nil означает «не менять».
// Идентичность, владелец, даты создания и длительность сюда не входят.
type UpdateTaskInput struct {
	Date        *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Category    *string `json:"category" validate:"omitnil,min=1"`
	Subcategory *string `json:"subcategory" validate:"omitnil,min=1"`
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Description *string `json:"description"`
	StatusID    *int    `json:"statusId" validate:"omitnil,gte=1,lte=4"`
	StartTime   *string `json:"startTime" validate:"omitnil,datetime=15:04"`
	EndTime     *string `json:"endTime" validate:"omitnil,datetime=15:04"`
	CarriedOver *bool   `json:"carriedOver"`
}

// Patch переводит вход в патч хранилища через опции модели.
func (in UpdateTaskInput) Patch() task.Patch {
	var opts []task.PatchOption
	if in.Date != nil {
		opts = append(opts, task.WithDate(*in.Date))
	}
	if in.Category != nil {
		opts = append(opts, task.WithCategory(*in.Category))
	}
	if in.Subcategory != nil {
		opts = append(opts, task.WithSubcategory(*in.Subcategory))
	}
	if in.Title != nil {
		opts = append(opts, task.WithTitle(*in.Title))
	}
	if in.Description != nil {
		opts = append(opts, task.WithDescription(*in.Description))
	}
	if in.StatusID != nil {
		opts = append(opts, task.WithStatus(task.Status(*in.StatusID)))
	}
	if in.StartTime != nil {
		opts = append(opts, task.WithStartTime(*in.StartTime))
	}
	if in.EndTime != nil {
		opts = append(opts, task.WithEndTime(*in.EndTime))
	}
	if in.CarriedOver != nil {
		opts = append(opts, task.WithCarriedOver(*in.CarriedOver))
	}
	return task.NewPatch(opts...)
}

type CreateNoteInput struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required,weekday"`
	Text      string `json:"text" validate:"required"`
	WeekStart string `json:"weekStart" validate:"required,datetime=2006-01-02"`
}

type UpdateNoteInput struct {
	Done *bool
	Text *string
}

type clearDayInput struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required,weekday"`
	WeekStart string `json:"weekStart" validate:"required,datetime=2006-01-02"`
}

type weekInput struct {
	WeekStart string `json:"weekStart" validate:"required,datetime=2006-01-02"`
}

type CreateUserInput struct {
	Username string `json:"username" validate:"min=3"`
	Password string `json:"password" validate:"min=4"`
	IsAdmin  bool   `json:"isAdmin"`
}
