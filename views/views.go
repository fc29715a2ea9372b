package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts/*.html partials/*.html plans/*.html history/*.html auth/*.html
var files embed.FS

// NewEngine returns the template engine for the embedded views. Reload
// re-parses templates on every render, which is only useful in development.
func NewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.Reload(reload)
	return engine
}
