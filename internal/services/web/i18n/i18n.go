// Package i18n resolves the request language and prints catalog messages for
// the tracker web surface.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supported = []language.Tag{language.English}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag picks the best supported tag from the Accept-Language header.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	accept := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if accept == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// PrinterFor returns the printer matching the request language.
func PrinterFor(r *http.Request) *message.Printer {
	return Printer(ResolveTag(r))
}
