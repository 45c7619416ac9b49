package templates

import (
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so components can emit markup
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// f writes a format string whose %s arguments are escaped.
func (w *writer) f(format string, args ...any) {
	for i, a := range args {
		if s, ok := a.(string); ok {
			args[i] = templ.EscapeString(s)
		}
	}
	w.raw(fmt.Sprintf(format, args...))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func marginClass(positive bool) string {
	if positive {
		return "text-success"
	}
	return "text-error"
}

func selectOptions(w *writer, opts []Option, selected string) {
	for _, o := range opts {
		sel := ""
		if o.Value == selected {
			sel = " selected"
		}
		w.f(`<option value="%s"%s>%s</option>`, o.Value, sel, o.Label)
	}
}
