package task

// Patch несёт только те поля, которые пришли в запросе на обновление.
// Владелец, id и createdAt сюда не попадают, поэтому неизменяемы.
type Patch struct {
	Date            *string
	Category        *string
	Subcategory     *string
	Title           *string
	Description     *string
	StatusID        *Status
	StartTime       *string
	EndTime         *string
	CarriedOver     *bool
	DurationMinutes *int
}

type PatchOption func(*Patch)

func NewPatch(options ...PatchOption) Patch {
	var p Patch
	for _, opt := range options {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

func WithDate(date string) PatchOption {
	return func(p *Patch) { p.Date = &date }
}

func WithCategory(category string) PatchOption {
	return func(p *Patch) { p.Category = &category }
}

func WithSubcategory(subcategory string) PatchOption {
	return func(p *Patch) { p.Subcategory = &subcategory }
}

func WithTitle(title string) PatchOption {
	return func(p *Patch) { p.Title = &title }
}

func WithDescription(description string) PatchOption {
	return func(p *Patch) { p.Description = &description }
}

func WithStatus(status Status) PatchOption {
	if !status.Valid() {
		return nil
	}
	return func(p *Patch) { p.StatusID = &status }
}

func WithStartTime(startTime string) PatchOption {
	return func(p *Patch) { p.StartTime = &startTime }
}

func WithEndTime(endTime string) PatchOption {
	return func(p *Patch) { p.EndTime = &endTime }
}

func WithCarriedOver(carriedOver bool) PatchOption {
	return func(p *Patch) { p.CarriedOver = &carriedOver }
}

// IsEmpty: в патче нет ни одного поля, которое может прислать клиент.
func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.Category == nil && p.Subcategory == nil &&
		p.Title == nil && p.Description == nil && p.StatusID == nil &&
		p.StartTime == nil && p.EndTime == nil && p.CarriedOver == nil
}

func (p Patch) TouchesSchedule() bool {
	return p.StartTime != nil || p.EndTime != nil
}

// MergedSchedule возвращает время начала и конца с учётом патча:
// новое значение, если пришло, иначе сохранённое.
func (p Patch) MergedSchedule(existing *Task) (string, string) {
	start, end := existing.StartTime, existing.EndTime
	if p.StartTime != nil {
		start = *p.StartTime
	}
	if p.EndTime != nil {
		end = *p.EndTime
	}
	return start, end
}

func (p Patch) Apply(t *Task) {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Subcategory != nil {
		t.Subcategory = *p.Subcategory
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.StatusID != nil {
		t.StatusID = *p.StatusID
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		t.EndTime = *p.EndTime
	}
	if p.CarriedOver != nil {
		v := *p.CarriedOver
		t.CarriedOver = &v
	}
	if p.DurationMinutes != nil {
		t.DurationMinutes = *p.DurationMinutes
	}
}
