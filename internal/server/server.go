// Package server serves read-only previews of the persisted document over
// HTTP. Every request reloads the document from the store, so the preview
// follows an editor running against the same store.
package server

import (
	"bytes"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/rs/zerolog"

	"liteedit/internal/document"
	"liteedit/internal/export"
	"liteedit/internal/store"
)

type Server struct {
	app    *fiber.App
	store  store.Store
	bounds document.Bounds
	log    zerolog.Logger
}

func New(st store.Store, bounds document.Bounds, log zerolog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:      "liteedit preview",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}),
		store:  st,
		bounds: bounds,
		log:    log,
	}

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{fiber.MethodGet},
	}))
	s.app.Use(s.requestLogger)

	s.app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/document.json", s.handleExport(export.FormatJSON))
	s.app.Get("/document.html", s.handleExport(export.FormatHTML))
	s.app.Get("/document.png", s.handleExport(export.FormatPNG))

	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("preview server listening")
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleExport(f export.Format) fiber.Handler {
	return func(c fiber.Ctx) error {
		doc, err := store.Restore(c.Context(), s.store, s.bounds)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to load document")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load document",
			})
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, f, doc, export.Options{}); err != nil {
			if errors.Is(err, export.ErrEmptyDocument) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			s.log.Error().Err(err).Str("format", string(f)).Msg("export failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "export failed",
			})
		}

		c.Type(string(f))
		return c.Send(buf.Bytes())
	}
}

func (s *Server) requestLogger(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("latency", time.Since(start)).
		Msg("request")
	return err
}
