package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/kvitkoaleksandr/TaskPro/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the task
// tracker API.
//
// Routes:
//
//	POST   /auth/register             → authHandler.Register
//	POST   /auth/login                → authHandler.Login
//	GET    /tasks/filter              → taskHandler.List
//	POST   /tasks                     → taskHandler.Create
//	GET    /tasks/{id}                → taskHandler.Get
//	PUT    /tasks/{id}                → taskHandler.Update
//	DELETE /tasks/{id}                → taskHandler.Delete
//	PATCH  /tasks/{id}/assign         → taskHandler.Assign
//	PATCH  /tasks/{id}/status         → taskHandler.Status
//	PATCH  /tasks/{id}/priority       → taskHandler.Priority
//	POST   /tasks/{id}/comments       → commentHandler.Add
//	GET    /tasks/{id}/comments       → commentHandler.List
//
// The /auth endpoints are public; everything under /tasks requires a
// valid bearer token, enforced by the authn middleware.
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	commentHandler *CommentHandler,
	authn func(http.Handler) http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Protected group: requires a valid bearer token
	r.Route("/tasks", func(r chi.Router) {
		r.Use(authn)

		r.Get("/filter", taskHandler.List)
		r.Post("/", taskHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.Get)
			r.Put("/", taskHandler.Update)
			r.Delete("/", taskHandler.Delete)
			r.Patch("/assign", taskHandler.Assign)
			r.Patch("/status", taskHandler.Status)
			r.Patch("/priority", taskHandler.Priority)
			r.Post("/comments", commentHandler.Add)
			r.Get("/comments", commentHandler.List)
		})
	})

	return r
}
