package views

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"github.com/a-h/templ"
)

//go:embed static
var staticFiles embed.FS

// Static serves the embedded stylesheet and scripts under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// printer writes HTML, remembering the first write error.
type printer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newPrinter(ctx context.Context, w io.Writer) *printer {
	return &printer{ctx: ctx, w: w}
}

func (p *printer) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

// rawf formats without escaping; callers escape dynamic arguments.
func (p *printer) rawf(format string, args ...any) {
	p.raw(fmt.Sprintf(format, args...))
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) component(c templ.Component) {
	if p.err == nil && c != nil {
		p.err = c.Render(p.ctx, p.w)
	}
}

// attr escapes s for use inside a double-quoted attribute.
func attr(s string) string {
	return templ.EscapeString(s)
}

// href sanitizes a URL and escapes it for an attribute.
func href(u string) string {
	return templ.EscapeString(string(templ.URL(u)))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
