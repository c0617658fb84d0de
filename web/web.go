// Package web provides the embedded program browser for the check service.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lemonberrylabs/roundscript/pkg/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the browser pages.
type Handler struct {
	store   *store.Store
	funcMap template.FuncMap
}

// pageData wraps all page-specific data with common fields.
type pageData struct {
	NavActive string
	Count     int
	Data      interface{}
}

// New creates a new web UI handler.
func New(s *store.Store) *Handler {
	return &Handler{
		store: s,
		funcMap: template.FuncMap{
			"shortID":    shortID,
			"timeAgo":    timeAgo,
			"formatTime": formatTime,
			"countLines": countLines,
			"label":      label,
		},
	}
}

func (h *Handler) render(c *fiber.Ctx, status int, page string, navActive string, data interface{}) error {
	// Each page is parsed with the layout on its own so define blocks don't collide.
	tmpl := template.Must(
		template.New("").Funcs(h.funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page),
	)

	pd := pageData{
		NavActive: navActive,
		Count:     h.store.Len(),
		Data:      data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, page, pd); err != nil {
		return c.Status(500).SendString(fmt.Sprintf("template error: %v", err))
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// Register adds web UI routes to the Fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/ui", h.programList)
	app.Get("/ui/programs/:id", h.programDetail)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/ui")
	})
}

// --- Page Data Types ---

type programListContent struct {
	Programs   []*store.Program
	WithBegin  int
	WithExpect int
}

type programDetailContent struct {
	Program *store.Program
	Tree    string
}

type notFoundContent struct {
	Message string
}

// --- Page Handlers ---

func (h *Handler) programList(c *fiber.Ctx) error {
	programs := h.store.List()

	content := programListContent{Programs: programs}
	for _, p := range programs {
		if p.HasBegin {
			content.WithBegin++
		}
		if p.HasExpect {
			content.WithExpect++
		}
	}

	return h.render(c, 200, "program_list.html", "programs", content)
}

func (h *Handler) programDetail(c *fiber.Ctx) error {
	id := c.Params("id")

	p, err := h.store.Get(id)
	if err != nil {
		return h.render(c, 404, "not_found.html", "", notFoundContent{
			Message: fmt.Sprintf("Program '%s' not found", id),
		})
	}

	return h.render(c, 200, "program_detail.html", "programs", programDetailContent{
		Program: p,
		Tree:    p.Tree.String(),
	})
}

// --- Template Helpers ---

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// label is the program's name, or its short ID when it has none.
func label(p *store.Program) string {
	if p.Name != "" {
		return p.Name
	}
	return shortID(p.ID)
}

func timeAgo(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
