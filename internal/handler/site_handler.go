package handler

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// SiteHandler serves the static portfolio site.
type SiteHandler struct {
	dir string
}

// NewSiteHandler serves files from dir.
func NewSiteHandler(dir string) *SiteHandler {
	return &SiteHandler{dir: dir}
}

// Register mounts the site at the root. It must be registered after the API
// routes so the static handler does not shadow them.
func (h *SiteHandler) Register(app *fiber.App) {
	app.Get("/", h.index)
	app.Static("/", h.dir)
}

func (h *SiteHandler) index(c *fiber.Ctx) error {
	return c.SendFile(filepath.Join(h.dir, "index.html"))
}
