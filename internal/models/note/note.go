package note

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklyNote - заметка планировщика на конкретный день недели.
type WeeklyNote struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	DayOfWeek string             `json:"dayOfWeek" bson:"dayOfWeek"`
	Text      string             `json:"text" bson:"text"`
	Done      bool               `json:"done" bson:"done"`
	WeekStart string             `json:"weekStart" bson:"weekStart"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func IsWeekday(day string) bool {
	return slices.Contains(Weekdays, day)
}

type Patch struct {
	Done *bool
	Text *string
}

func (p Patch) Apply(n *WeeklyNote) {
	if p.Done != nil {
		n.Done = *p.Done
	}
	if p.Text != nil {
		n.Text = *p.Text
	}
}
