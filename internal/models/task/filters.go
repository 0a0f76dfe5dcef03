package task

import (
	"cmp"
	"slices"
)

// Filters - необязательные условия выборки. Пустые значения не фильтруют.
type Filters struct {
	Date      string
	Category  string
	StatusID  Status
	StartDate string
	EndDate   string
}

// HasRange: диапазон применяется только если заданы обе границы,
// и тогда он заменяет точную дату.
func (f Filters) HasRange() bool {
	return f.StartDate != "" && f.EndDate != ""
}

func (f Filters) Match(t *Task) bool {
	if f.HasRange() {
		if t.Date < f.StartDate || t.Date > f.EndDate {
			return false
		}
	} else if f.Date != "" && t.Date != f.Date {
		return false
	}

	if f.Category != "" && t.Category != f.Category {
		return false
	}

	if f.StatusID != 0 && t.StatusID != f.StatusID {
		return false
	}

	return true
}

// SortNewestFirst: дата по убыванию, внутри даты - время создания по убыванию.
// Сортировка стабильная, поэтому при равных ключах порядок входа сохраняется.
func SortNewestFirst(tasks []*Task) {
	slices.SortStableFunc(tasks, func(a, b *Task) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Summary - сводка для панели статистики и отчётов.
type Summary struct {
	Total          int     `json:"total"`
	ToDo           int     `json:"todo"`
	Pending        int     `json:"pending"`
	Done           int     `json:"done"`
	OnHold         int     `json:"onHold"`
	TotalMinutes   int     `json:"totalMinutes"`
	CompletionRate float64 `json:"completionRate"`
}

func Summarize(tasks []*Task) Summary {
	var s Summary
	for _, t := range tasks {
		s.Total++
		s.TotalMinutes += t.DurationMinutes
		switch t.StatusID {
		case StatusToDo:
			s.ToDo++
		case StatusPending:
			s.Pending++
		case StatusDone:
			s.Done++
		case StatusOnHold:
			s.OnHold++
		}
	}
	if s.Total > 0 {
		rate := float64(s.Done) / float64(s.Total) * 100
		s.CompletionRate = float64(int(rate*10+0.5)) / 10
	}
	return s
}

// StatusCounts всегда содержит все четыре статуса, даже с нулём.
func StatusCounts(tasks []*Task) map[Status]int {
	counts := map[Status]int{StatusToDo: 0, StatusPending: 0, StatusDone: 0, StatusOnHold: 0}
	for _, t := range tasks {
		if _, ok := counts[t.StatusID]; ok {
			counts[t.StatusID]++
		}
	}
	return counts
}
