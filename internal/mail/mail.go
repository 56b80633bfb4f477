package mail

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var templateFS embed.FS

var htmlEngine *html.Engine

func init() {
	mailFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	htmlEngine = html.NewFileSystem(http.FS(mailFS), ".html")
	if err := htmlEngine.Load(); err != nil {
		panic(err)
	}
}

func renderHTML(templateName string, vars fiber.Map) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := htmlEngine.Render(buf, templateName, vars); err != nil {
		return "", err
	}
	return buf.String(), nil
}
