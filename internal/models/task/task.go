package task

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID          string             `json:"userId" bson:"userId"`
	Date            string             `json:"date" bson:"date"`
	Category        string             `json:"category" bson:"category"`
	Subcategory     string             `json:"subcategory" bson:"subcategory"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description" bson:"description"`
	StatusID        Status             `json:"statusId" bson:"statusId"`
	StartTime       string             `json:"startTime" bson:"startTime"`
	EndTime         string             `json:"endTime" bson:"endTime"`
	DurationMinutes int                `json:"durationMinutes" bson:"durationMinutes"`
	CarriedOver     *bool              `json:"carriedOver,omitempty" bson:"carriedOver,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Status int

const (
	StatusToDo    Status = 1
	StatusPending Status = 2
	StatusDone    Status = 3
	StatusOnHold  Status = 4
)

func (s Status) Valid() bool {
	return s >= StatusToDo && s <= StatusOnHold
}

const minutesPerDay = 24 * 60

// CalculateDuration считает длительность в минутах между двумя HH:MM.
// Если конец раньше начала, задача считается ночной и конец сдвигается на сутки.
func CalculateDuration(startTime, endTime string) int {
	start, ok := clockMinutes(startTime)
	if !ok {
		return 0
	}
	end, ok := clockMinutes(endTime)
	if !ok {
		return 0
	}

	if end < start {
		end += minutesPerDay
	}

	return max(0, end-start)
}

func clockMinutes(value string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return 0, false
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}

	return hours*60 + minutes, true
}

// Clone возвращает копию, не разделяющую указатели с оригиналом.
func (t *Task) Clone() *Task {
	c := *t
	if t.CarriedOver != nil {
		v := *t.CarriedOver
		c.CarriedOver = &v
	}
	return &c
}
