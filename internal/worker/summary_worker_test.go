package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusCounter struct {
	mock.Mock
}

func (m *MockStatusCounter) CountByStatus(ctx context.Context, scope access.Scope, filters task.Filters) (map[task.Status]int, error) {
	args := m.Called(ctx, scope, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[task.Status]int), args.Error(1)
}

func TestSummaryWorker_CheckCountsToday(t *testing.T) {
	counter := new(MockStatusCounter)
	counts := map[task.Status]int{task.StatusToDo: 2, task.StatusPending: 0, task.StatusDone: 5, task.StatusOnHold: 1}
	counter.On("CountByStatus", mock.Anything, access.Unscoped(), task.Filters{Date: "2025-03-01"}).Return(counts, nil)

	w := NewSummaryWorker(counter, nil)
	w.now = func() time.Time { return time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC) }

	assert.Equal(t, counts, w.Check(context.Background()))
	counter.AssertExpectations(t)
}

func TestSummaryWorker_CheckStoreError(t *testing.T) {
	counter := new(MockStatusCounter)
	counter.On("CountByStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	assert.Nil(t, NewSummaryWorker(counter, nil).Check(context.Background()))
}

func TestSummaryWorker_Schedule(t *testing.T) {
	assert.Equal(t, DefaultSchedule, NewSummaryWorker(nil, nil).schedule)

	empty := ""
	assert.Equal(t, DefaultSchedule, NewSummaryWorker(nil, &empty).schedule)

	bad := "every tuesday"
	err := NewSummaryWorker(nil, &bad).Start(context.Background())
	require.Error(t, err)
}

func TestSummaryWorker_StartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	schedule := "*/5 * * * *"
	require.NoError(t, NewSummaryWorker(new(MockStatusCounter), &schedule).Start(ctx))
	cancel()
}
