package task_test

import (
	"fmt"
	"testing"
	"time"

	"taskBoard/internal/models/task"

	"github.com/stretchr/testify/assert"
)

// TestCalculateDuration тестирует расчёт длительности
func TestCalculateDuration(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		expected  int
	}{
		{name: "working day", startTime: "09:00", endTime: "17:00", expected: 480},
		{name: "same time", startTime: "10:15", endTime: "10:15", expected: 0},
		{name: "overnight", startTime: "22:00", endTime: "02:00", expected: 240},
		{name: "one minute before midnight wrap", startTime: "00:01", endTime: "00:00", expected: 1439},
		{name: "single digit hour", startTime: "9:30", endTime: "10:00", expected: 30},
		{name: "missing start", startTime: "", endTime: "10:00", expected: 0},
		{name: "garbage end", startTime: "10:00", endTime: "ten", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, task.CalculateDuration(tt.startTime, tt.endTime))
		})
	}
}

// TestCalculateDuration_AllPairs проверяет обе ветки формулы на всех часах
func TestCalculateDuration_AllPairs(t *testing.T) {
	for sh := 0; sh < 24; sh++ {
		for eh := 0; eh < 24; eh++ {
			start := fmt.Sprintf("%02d:30", sh)
			end := fmt.Sprintf("%02d:15", eh)
			startMin := sh*60 + 30
			endMin := eh*60 + 15

			expected := endMin - startMin
			if endMin < startMin {
				expected = endMin + 1440 - startMin
			}

			assert.Equal(t, expected, task.CalculateDuration(start, end), "%s-%s", start, end)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.False(t, task.Status(0).Valid())
	assert.True(t, task.StatusToDo.Valid())
	assert.True(t, task.StatusOnHold.Valid())
	assert.False(t, task.Status(5).Valid())
}

// TestFilters_Match тестирует фильтры выборки
func TestFilters_Match(t *testing.T) {
	tk := &task.Task{Date: "2025-03-05", Category: "HR", StatusID: task.StatusPending}

	tests := []struct {
		name     string
		filters  task.Filters
		expected bool
	}{
		{name: "no filters", filters: task.Filters{}, expected: true},
		{name: "exact date", filters: task.Filters{Date: "2025-03-05"}, expected: true},
		{name: "other date", filters: task.Filters{Date: "2025-03-06"}, expected: false},
		{name: "category", filters: task.Filters{Category: "Legal"}, expected: false},
		{name: "status", filters: task.Filters{StatusID: task.StatusPending}, expected: true},
		{name: "range inclusive", filters: task.Filters{StartDate: "2025-03-05", EndDate: "2025-03-05"}, expected: true},
		{name: "range overrides date", filters: task.Filters{Date: "2025-01-01", StartDate: "2025-03-01", EndDate: "2025-03-31"}, expected: true},
		{name: "range excludes", filters: task.Filters{Date: "2025-03-05", StartDate: "2025-04-01", EndDate: "2025-04-30"}, expected: false},
		{name: "half range ignored", filters: task.Filters{Date: "2025-03-05", StartDate: "2025-04-01"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filters.Match(tk))
		})
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	a := &task.Task{Title: "a", Date: "2025-03-01", CreatedAt: base}
	b := &task.Task{Title: "b", Date: "2025-03-02", CreatedAt: base}
	c := &task.Task{Title: "c", Date: "2025-03-01", CreatedAt: base.Add(time.Minute)}
	d := &task.Task{Title: "d", Date: "2025-03-01", CreatedAt: base.Add(time.Minute)}

	tasks := []*task.Task{a, b, c, d}
	task.SortNewestFirst(tasks)

	titles := make([]string, len(tasks))
	for i, tk := range tasks {
		titles[i] = tk.Title
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, titles)
}

func TestSummarize(t *testing.T) {
	tasks := []*task.Task{
		{StatusID: task.StatusDone, DurationMinutes: 60},
		{StatusID: task.StatusToDo, DurationMinutes: 30},
		{StatusID: task.StatusPending, DurationMinutes: 15},
	}

	s := task.Summarize(tasks)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Done)
	assert.Equal(t, 1, s.ToDo)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 0, s.OnHold)
	assert.Equal(t, 105, s.TotalMinutes)
	assert.Equal(t, 33.3, s.CompletionRate)

	assert.Equal(t, task.Summary{}, task.Summarize(nil))
}

func TestStatusCounts(t *testing.T) {
	counts := task.StatusCounts([]*task.Task{
		{StatusID: task.StatusDone},
		{StatusID: task.StatusDone},
		{StatusID: task.StatusOnHold},
	})

	assert.Equal(t, map[task.Status]int{
		task.StatusToDo:    0,
		task.StatusPending: 0,
		task.StatusDone:    2,
		task.StatusOnHold:  1,
	}, counts)
}

func TestPatch(t *testing.T) {
	existing := &task.Task{Title: "old", StartTime: "09:00", EndTime: "17:00"}

	p := task.NewPatch(task.WithStartTime("08:00"), task.WithStatus(task.Status(9)))
	assert.False(t, p.IsEmpty())
	assert.True(t, p.TouchesSchedule())
	assert.Nil(t, p.StatusID)

	start, end := p.MergedSchedule(existing)
	assert.Equal(t, "08:00", start)
	assert.Equal(t, "17:00", end)

	assert.True(t, task.NewPatch().IsEmpty())

	p = task.NewPatch(task.WithTitle("new"), task.WithCarriedOver(true))
	p.Apply(existing)
	assert.Equal(t, "new", existing.Title)
	assert.Equal(t, "09:00", existing.StartTime)
	if assert.NotNil(t, existing.CarriedOver) {
		assert.True(t, *existing.CarriedOver)
	}
}
