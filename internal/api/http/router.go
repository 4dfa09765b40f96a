package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/task-service/internal/api/http/handlers"
	"github.com/spec-kit/task-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tasks          *handlers.TasksHandler
	Comments       *handlers.CommentsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Probes and metrics are registered before
// the identity middleware so they never touch the database. Everything after
// it runs with an optional identity; handlers decide whether to require one.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(cfg.AuthMiddleware.Handle)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)

	tasks := app.Group("/tasks")
	tasks.Post("/", cfg.Tasks.CreateTask)
	tasks.Get("/", cfg.Tasks.ListTasks)
	tasks.Get("/:id", cfg.Tasks.GetTask)
	tasks.Put("/:id", cfg.Tasks.UpdateTask)
	tasks.Put("/:id/assign", cfg.Tasks.AssignTask)
	tasks.Post("/:id/comments", cfg.Comments.CreateComment)
	tasks.Get("/:id/comments", cfg.Comments.ListComments)
	tasks.Delete("/:id/comments/:commentId", cfg.Comments.DeleteComment)

	users := app.Group("/users")
	users.Get("/me", cfg.Users.Me)
	users.Put("/me/password", cfg.Auth.ChangePassword)
	users.Get("/", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Put("/:id/role", cfg.Users.UpdateRole)
	users.Put("/:id/status", cfg.Users.SetActive)
}
