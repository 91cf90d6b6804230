package httpapi

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/calebhart/seedpost/internal/service"
)

// Server exposes the generation engine over HTTP.
type Server struct {
	app      *fiber.App
	svc      service.CalendarService
	validate *validator.Validate
}

// NewServer builds the Fiber app and registers all routes.
func NewServer(svc service.CalendarService) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          5 * time.Minute, // generation calls are slow
		IdleTimeout:           90 * time.Second,
	})

	s := &Server{
		app:      app,
		svc:      svc,
		validate: validator.New(),
	}

	app.Use(requestID)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api")
	api.Get("/example", s.handleExample)
	api.Post("/generate", s.handleGenerate)
	api.Post("/generate-next-week", s.handleNextWeek)
	api.Get("/calendar", s.handleCurrent)
	api.Delete("/calendar", s.handleReset)
	api.Post("/validate", s.handleValidate)

	return s
}

// requestID tags every request for log correlation.
func requestID(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("X-Request-ID", id)

	start := time.Now()
	err := c.Next()
	log.Printf("[req] id=%s %s %s status=%d dur=%s",
		id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

// Listen starts serving on addr and blocks.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains connections gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
