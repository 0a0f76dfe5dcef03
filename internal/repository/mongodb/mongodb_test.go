package mongodb_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/config"
	"taskBoard/internal/models/note"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/repository/mongodb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MongoTestSuite struct {
	suite.Suite
	container testcontainers.Container
	cfg       config.MongoConfig
	storage   *mongodb.Storage
	ctx       context.Context
}

func (s *MongoTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(s.ctx, "27017")
	require.NoError(s.T(), err)

	s.cfg = config.MongoConfig{
		URI:      fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database: "taskmanager_test",
	}
}

func (s *MongoTestSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

// SetupTest пересоздаёт базу, чтобы тесты не видели данные друг друга
func (s *MongoTestSuite) SetupTest() {
	s.cfg.Database = fmt.Sprintf("taskmanager_%d", time.Now().UnixNano())

	storage, err := mongodb.New(s.ctx, s.cfg)
	require.NoError(s.T(), err)
	s.storage = storage
}

func (s *MongoTestSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close(s.ctx)
	}
}

func TestMongoTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционные тесты в коротком режиме")
	}
	suite.Run(t, new(MongoTestSuite))
}

func newTask(owner, date, title string) *task.Task {
	return &task.Task{
		UserID:          owner,
		Date:            date,
		Category:        "Security",
		Subcategory:     "Incident Reports",
		Title:           title,
		StatusID:        task.StatusToDo,
		StartTime:       "22:00",
		EndTime:         "02:00",
		DurationMinutes: 240,
	}
}

func (s *MongoTestSuite) TestHealthCheck() {
	assert.NoError(s.T(), s.storage.HealthCheck(s.ctx))
	assert.NoError(s.T(), s.storage.Tasks().HealthCheck(s.ctx))
}

func (s *MongoTestSuite) TestTasks_CRUD() {
	tasks := s.storage.Tasks()

	created := newTask("alice", "2025-03-01", "night shift")
	require.NoError(s.T(), tasks.Create(s.ctx, created))

	got, err := tasks.GetByID(s.ctx, created.ID, access.ScopedTo("alice"))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 240, got.DurationMinutes)
	assert.Equal(s.T(), task.StatusToDo, got.StatusID)

	_, err = tasks.GetByID(s.ctx, created.ID, access.ScopedTo("bob"))
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)

	updated, err := tasks.Update(s.ctx, created.ID, task.NewPatch(task.WithStatus(task.StatusDone)), access.Unscoped())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), task.StatusDone, updated.StatusID)
	assert.Equal(s.T(), "night shift", updated.Title)

	_, err = tasks.Update(s.ctx, primitive.NewObjectID(), task.NewPatch(task.WithTitle("x")), access.Unscoped())
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)

	deleted, err := tasks.Delete(s.ctx, created.ID, access.ScopedTo("bob"))
	require.NoError(s.T(), err)
	assert.False(s.T(), deleted)

	deleted, err = tasks.Delete(s.ctx, created.ID, access.ScopedTo("alice"))
	require.NoError(s.T(), err)
	assert.True(s.T(), deleted)
}

func (s *MongoTestSuite) TestTasks_ListAndCount() {
	tasks := s.storage.Tasks()

	for _, tt := range []struct {
		owner, date, title string
		status             task.Status
	}{
		{"alice", "2025-03-01", "a1", task.StatusDone},
		{"alice", "2025-03-03", "a2", task.StatusToDo},
		{"bob", "2025-03-02", "b1", task.StatusDone},
	} {
		tk := newTask(tt.owner, tt.date, tt.title)
		tk.StatusID = tt.status
		require.NoError(s.T(), tasks.Create(s.ctx, tk))
	}

	all, err := tasks.List(s.ctx, access.Unscoped(), task.Filters{})
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 3)
	assert.Equal(s.T(), "a2", all[0].Title)
	assert.Equal(s.T(), "b1", all[1].Title)

	bob, err := tasks.List(s.ctx, access.ScopedTo("bob"), task.Filters{})
	require.NoError(s.T(), err)
	require.Len(s.T(), bob, 1)

	counts, err := tasks.CountByStatus(s.ctx, access.Unscoped(), task.Filters{StartDate: "2025-03-01", EndDate: "2025-03-02"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, counts[task.StatusDone])
	assert.Equal(s.T(), 0, counts[task.StatusToDo])
}

func (s *MongoTestSuite) TestNotes() {
	notes := s.storage.Notes()

	for i := 0; i < 3; i++ {
		require.NoError(s.T(), notes.Create(s.ctx, &note.WeeklyNote{
			UserID: "alice", DayOfWeek: "Monday", WeekStart: "2025-03-03", Text: fmt.Sprintf("n%d", i),
		}))
	}

	friday := &note.WeeklyNote{UserID: "alice", DayOfWeek: "Friday", WeekStart: "2025-03-03", Text: "keep"}
	require.NoError(s.T(), notes.Create(s.ctx, friday))
	require.NoError(s.T(), notes.Create(s.ctx, &note.WeeklyNote{
		UserID: "bob", DayOfWeek: "Friday", WeekStart: "2025-03-03", Text: "bob's",
	}))

	deleted, err := notes.ClearDay(s.ctx, "alice", "Monday", "2025-03-03")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(3), deleted)

	list, err := notes.ListByWeek(s.ctx, "alice", "2025-03-03")
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), friday.ID, list[0].ID)

	cleared, err := notes.ClearWeek(s.ctx, "alice", "2025-03-03")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), cleared)

	bobs, err := notes.ListByWeek(s.ctx, "bob", "2025-03-03")
	require.NoError(s.T(), err)
	assert.Len(s.T(), bobs, 1)
}

func (s *MongoTestSuite) TestUsers() {
	users := s.storage.Users()

	require.NoError(s.T(), users.Create(s.ctx, &user.User{Username: "admin", PasswordHash: "hash", IsAdmin: true}))
	err := users.Create(s.ctx, &user.User{Username: "admin", PasswordHash: "hash"})
	assert.ErrorIs(s.T(), err, repo.ErrAlreadyExists)

	found, err := users.FindByUsername(s.ctx, "admin")
	require.NoError(s.T(), err)
	assert.True(s.T(), found.IsAdmin)
	assert.Equal(s.T(), "hash", found.PasswordHash)

	list, err := users.List(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Empty(s.T(), list[0].PasswordHash)
}
