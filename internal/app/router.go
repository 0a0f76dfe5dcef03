package app

import (
	"net/http"

	"taskBoard/internal/handlers"
	"taskBoard/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (a *App) routes() *chi.Mux {
	taskHandler := handlers.NewTaskHandler(a.tasks)
	noteHandler := handlers.NewNoteHandler(a.notes)
	userHandler := handlers.NewUserHandler(a.users)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	if a.config.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(a.config.Server.RequestTimeout))
	}
	r.Use(middleware.RateLimit(a.config.Server.RateLimitRPM))

	r.Get("/health", taskHandler.HealthCheck)
	r.Post("/auth/login", userHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(a.tokens))

		r.Get("/auth/me", userHandler.Me)
		r.Get("/categories", handlers.Categories)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)       // GET /tasks
			r.Post("/", taskHandler.CreateTask)     // POST /tasks
			r.Get("/summary", taskHandler.Summary) // GET /tasks/summary

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTask)       // GET /tasks/{id}
				r.Put("/", taskHandler.UpdateTask)    // PUT /tasks/{id}
				r.Delete("/", taskHandler.DeleteTask) // DELETE /tasks/{id}
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Post("/", userHandler.CreateUser)
		})

		r.Route("/weekly-notes", func(r chi.Router) {
			r.Get("/", noteHandler.ListWeek)
			r.Post("/", noteHandler.CreateNote)
			r.Put("/", noteHandler.UpdateNote)
			r.Delete("/", noteHandler.DeleteNote)
		})
	})

	return r
}
