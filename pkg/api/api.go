// Package api implements the HTTP check service: clients post token-stream
// documents, the service parses them and keeps accepted programs in memory.
package api

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lemonberrylabs/roundscript/pkg/ast"
	"github.com/lemonberrylabs/roundscript/pkg/parser"
	"github.com/lemonberrylabs/roundscript/pkg/store"
	"github.com/lemonberrylabs/roundscript/pkg/tokenfile"
)

// Options configures a Server.
type Options struct {
	StrictBlocks bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the API server for the check service.
type Server struct {
	app   *fiber.App
	store *store.Store
	opts  Options
}

// New creates a new API server.
func New(s *store.Store, opts Options) *Server {
	srv := &Server{store: s, opts: opts}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		BodyLimit:             tokenfile.MaxDocumentSize,
	})

	app.Get("/healthz", srv.health)

	app.Post("/v1/programs/check", srv.checkProgram)
	app.Post("/v1/programs", srv.createProgram)
	app.Get("/v1/programs", srv.listPrograms)
	app.Get("/v1/programs/:id", srv.getProgram)
	app.Delete("/v1/programs/:id", srv.deleteProgram)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Serve starts the HTTP server on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "programs": s.store.Len()})
}

// --- Program Handlers ---

func (s *Server) checkProgram(c *fiber.Ctx) error {
	prog, err := s.parseBody(c)
	if err != nil {
		return s.writeParseFailure(c, err)
	}
	return c.JSON(fiber.Map{
		"valid": true,
		"tree":  prog.String(),
	})
}

func (s *Server) createProgram(c *fiber.Ctx) error {
	prog, err := s.parseBody(c)
	if err != nil {
		return s.writeParseFailure(c, err)
	}

	p, err := s.store.Create(c.Query("name"), prog)
	if err != nil {
		if errors.Is(err, store.ErrFull) {
			return errorJSON(c, 507, "RESOURCE_EXHAUSTED", err.Error())
		}
		return errorJSON(c, 500, "INTERNAL", err.Error())
	}

	return c.Status(201).JSON(programToJSON(p))
}

func (s *Server) getProgram(c *fiber.Ctx) error {
	p, err := s.store.Get(c.Params("id"))
	if err != nil {
		return errorJSON(c, 404, "NOT_FOUND", err.Error())
	}
	return c.JSON(programToJSON(p))
}

func (s *Server) listPrograms(c *fiber.Ctx) error {
	programs := s.store.List()

	items := make([]fiber.Map, len(programs))
	for i, p := range programs {
		items[i] = programToJSON(p)
	}

	return c.JSON(fiber.Map{
		"programs": items,
	})
}

func (s *Server) deleteProgram(c *fiber.Ctx) error {
	if err := s.store.Delete(c.Params("id")); err != nil {
		return errorJSON(c, 404, "NOT_FOUND", err.Error())
	}
	return c.SendStatus(204)
}

// LoadDir parses every token document (.yaml, .yml, .json) in dir and stores
// the ones that parse. Failures are logged and skipped.
func (s *Server) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading programs directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}

		f, err := tokenfile.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("Warning: could not read %q: %v", name, err)
			continue
		}

		prog, err := parser.Parse(f.Tokens, s.parserOptions(f.Source, false)...)
		if err != nil {
			log.Printf("Warning: could not parse %q: %v", name, err)
			continue
		}

		if _, err := s.store.Create(strings.TrimSuffix(name, ext), prog); err != nil {
			log.Printf("Warning: could not store %q: %v", name, err)
			continue
		}
		loaded++
	}

	log.Printf("Loaded %d program(s) from %s", loaded, dir)
	return nil
}

// --- Helpers ---

type requestError struct {
	status int
	code   string
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// parseBody decodes the request body as a token document and parses it.
func (s *Server) parseBody(c *fiber.Ctx) (*ast.Program, error) {
	body := c.Body()
	if len(body) == 0 {
		return nil, &requestError{status: 400, code: "INVALID_ARGUMENT", err: errors.New("request body is required")}
	}

	f, err := tokenfile.Decode(body)
	if err != nil {
		return nil, &requestError{status: 400, code: "INVALID_ARGUMENT", err: err}
	}

	prog, err := parser.Parse(f.Tokens, s.parserOptions(f.Source, c.QueryBool("strict"))...)
	if err != nil {
		return nil, &requestError{status: 422, code: "PARSE_ERROR", err: err}
	}
	return prog, nil
}

func (s *Server) parserOptions(source []byte, strict bool) []parser.Option {
	opts := []parser.Option{parser.WithSource(source)}
	if strict || s.opts.StrictBlocks {
		opts = append(opts, parser.WithStrictBlocks())
	}
	return opts
}

func (s *Server) writeParseFailure(c *fiber.Ctx, err error) error {
	var pf *requestError
	if !errors.As(err, &pf) {
		return errorJSON(c, 500, "INTERNAL", err.Error())
	}

	var pe *parser.ParseError
	if errors.As(pf.err, &pe) {
		return c.Status(pf.status).JSON(fiber.Map{
			"valid": false,
			"error": fiber.Map{
				"code":       pf.status,
				"status":     pf.code,
				"kind":       pe.Kind.String(),
				"line":       pe.Line + 1,
				"message":    pe.Error(),
				"diagnostic": pe.Diagnostic(),
			},
		})
	}
	return errorJSON(c, pf.status, pf.code, pf.err.Error())
}

func errorJSON(c *fiber.Ctx, code int, status, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
			"status":  status,
		},
	})
}

func programToJSON(p *store.Program) fiber.Map {
	result := fiber.Map{
		"id":         p.ID,
		"createTime": p.CreateTime.Format(time.RFC3339),
		"statements": p.Statements,
		"hasBegin":   p.HasBegin,
		"hasExpect":  p.HasExpect,
		"tree":       p.Tree.String(),
	}
	if p.Name != "" {
		result["name"] = p.Name
	}
	return result
}
