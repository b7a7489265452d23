// Package templates holds the templ components that render tracker pages.
//
// Components write escaped HTML directly through templ.ComponentFunc. Every
// user-supplied value passes through text or attr, which escape it.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// Localizer provides translated strings for templ components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

// Option is one entry of a select input.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// htmlWriter accumulates the first write error so components read linearly.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) element(tag, class, body string) {
	h.raw("<" + tag)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
	h.text(body)
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) link(href, class, body string) {
	h.raw("<a")
	h.attr("href", href)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
	h.text(body)
	h.raw("</a>")
}

func (h *htmlWriter) input(kind, name, value string, required bool) {
	h.raw("<input")
	h.attr("type", kind)
	h.attr("id", name)
	h.attr("name", name)
	if value != "" {
		h.attr("value", value)
	}
	if required {
		h.raw(" required")
	}
	h.raw(">")
}

func (h *htmlWriter) field(label, kind, name, value string, required bool) {
	h.raw(`<div class="field"><label`)
	h.attr("for", name)
	h.raw(">")
	h.text(label)
	h.raw("</label>")
	h.input(kind, name, value, required)
	h.raw("</div>")
}

func (h *htmlWriter) textarea(label, name, value string) {
	h.raw(`<div class="field"><label`)
	h.attr("for", name)
	h.raw(">")
	h.text(label)
	h.raw("</label><textarea")
	h.attr("id", name)
	h.attr("name", name)
	h.raw(` rows="4">`)
	h.text(value)
	h.raw("</textarea></div>")
}

func (h *htmlWriter) selectField(label, name string, options []Option, required bool) {
	h.raw(`<div class="field"><label`)
	h.attr("for", name)
	h.raw(">")
	h.text(label)
	h.raw("</label><select")
	h.attr("id", name)
	h.attr("name", name)
	if required {
		h.raw(" required")
	}
	h.raw(">")
	for _, option := range options {
		h.raw("<option")
		h.attr("value", option.Value)
		if option.Selected {
			h.raw(" selected")
		}
		h.raw(">")
		h.text(option.Label)
		h.raw("</option>")
	}
	h.raw("</select></div>")
}

// postButton renders a single-button form, used for deletes.
func (h *htmlWriter) postButton(action, class, label string) {
	h.raw(`<form method="post" class="inline"`)
	h.attr("action", action)
	h.raw("><button")
	h.attr("type", "submit")
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
	h.text(label)
	h.raw("</button></form>")
}

func (h *htmlWriter) dataList(pairs ...string) {
	h.raw(`<dl class="details">`)
	for i := 0; i+1 < len(pairs); i += 2 {
		h.element("dt", "", pairs[i])
		h.element("dd", "", pairs[i+1])
	}
	h.raw("</dl>")
}

func component(render func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		render(ctx, h)
		return h.err
	})
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
