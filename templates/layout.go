package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps page content in the document shell.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8">`)
		w.f(`<title>%s</title>`, title)
		w.raw(`<link rel="stylesheet" href="/static/css/app.css">`)
		w.raw(`<script src="/static/js/htmx.min.js"></script>`)
		w.raw(`</head><body hx-ext="response-targets"><main id="main-content" class="container">`)
		if w.err != nil {
			return w.err
		}
		if err := content.Render(ctx, out); err != nil {
			return err
		}
		w.raw(`</main><div id="toast-container"></div><script src="/static/js/toast.js"></script></body></html>`)
		return w.err
	})
}
