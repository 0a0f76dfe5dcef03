package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskBoard/internal/auth"
	"taskBoard/internal/config"
	"taskBoard/internal/logger"
	"taskBoard/internal/repository/inmemory"
	"taskBoard/internal/repository/mongodb"
	"taskBoard/internal/repository/postgres"
	"taskBoard/internal/service"
	"taskBoard/internal/validation"
	"taskBoard/internal/worker"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	tokens    *auth.TokenManager
	tasks     *service.TaskService
	notes     *service.NoteService
	users     *service.UserService
	worker    *worker.SummaryWorker
	shutdowns []func() // функции для graceful shutdown, вызываются в обратном порядке
}

// repositories - одно подключение на процесс, общее для всех репозиториев.
type repositories struct {
	tasks service.TaskRepository
	notes service.NoteRepository
	users service.UserRepository
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	repos, err := a.initRepositories(ctx)
	if err != nil {
		return err
	}

	v := validation.New()
	a.tokens = auth.NewTokenManager(a.config.Auth.JWTSecret, a.config.Auth.TokenTTL)
	a.tasks = service.NewTaskService(repos.tasks, v)
	a.notes = service.NewNoteService(repos.notes, v)
	a.users = service.NewUserService(repos.users, a.tokens, v,
		service.WithDefaultAdminPassword(a.config.Auth.DefaultAdminPassword))

	if err := a.users.EnsureDefaultAdmin(ctx); err != nil {
		return fmt.Errorf("создание администратора: %w", err)
	}

	if a.config.Worker.SummaryEnabled {
		a.worker = worker.NewSummaryWorker(a.tasks, &a.config.Worker.SummarySchedule)
	}

	a.router = a.routes()
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      otelhttp.NewHandler(a.router, "taskboard"),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	logger.Info("Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.String("addr", a.server.Addr))
	return nil
}

func (a *App) initRepositories(ctx context.Context) (repositories, error) {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return repositories{}, err
		}
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return repositories{}, fmt.Errorf("подключение к postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("Закрытие пула postgres...")
			storage.Close()
		})
		return repositories{tasks: storage.Tasks(), notes: storage.Notes(), users: storage.Users()}, nil

	case config.RepositoryMongo:
		storage, err := mongodb.New(ctx, a.config.Mongo)
		if err != nil {
			return repositories{}, fmt.Errorf("подключение к mongo: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("Отключение от mongo...")
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := storage.Close(closeCtx); err != nil {
				logger.Error("Ошибка отключения от mongo", err)
			}
		})
		return repositories{tasks: storage.Tasks(), notes: storage.Notes(), users: storage.Users()}, nil

	default:
		logger.Warn("Используется inmemory хранилище, данные не переживут перезапуск")
		return repositories{
			tasks: inmemory.NewTaskStorage(),
			notes: inmemory.NewNoteStorage(),
			users: inmemory.NewUserStorage(),
		}, nil
	}
}

// Handler - корневой обработчик без трассировки, удобен для тестов.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run запускает воркер и сервер и блокируется до отмены ctx,
// после чего выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	if a.worker != nil {
		if err := a.worker.Start(ctx); err != nil {
			return fmt.Errorf("запуск воркера: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.runShutdowns()
			return fmt.Errorf("http сервер: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Получен сигнал остановки")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

func (a *App) Shutdown(ctx context.Context) error {
	var err error
	if a.server != nil {
		if shutdownErr := a.server.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("остановка сервера: %w", shutdownErr)
		}
	}
	a.runShutdowns()
	return err
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
