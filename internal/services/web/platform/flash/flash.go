// Package flash carries one-time success and error notices across redirects
// as query parameters.
package flash

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/message"
)

// Kind classifies notice presentation. Its value is also the query parameter.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// maxTextLength bounds how much query text is echoed back into a page.
const maxTextLength = 200

// Notice references one catalog message.
type Notice struct {
	Kind Kind
	Key  string
}

// Success creates a success notice for the provided localization key.
func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// Error creates an error notice for the provided localization key.
func Error(key string) Notice {
	return Notice{Kind: KindError, Key: key}
}

// Localizer prints catalog messages.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Location returns path with the localized notice added to its query. Existing
// query parameters on path are kept.
func Location(path string, notice Notice, loc Localizer) string {
	key := strings.TrimSpace(notice.Key)
	if key == "" || (notice.Kind != KindSuccess && notice.Kind != KindError) {
		return path
	}
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	text := key
	if loc != nil {
		text = loc.Sprintf(key)
	}
	query := u.Query()
	query.Set(string(notice.Kind), text)
	u.RawQuery = query.Encode()
	return u.String()
}

// Message is a notice ready for display.
type Message struct {
	Kind Kind
	Text string
}

// FromRequest reads the notices carried by the request query.
func FromRequest(r *http.Request) []Message {
	if r == nil || r.URL == nil {
		return nil
	}
	query := r.URL.Query()
	var messages []Message
	for _, kind := range []Kind{KindSuccess, KindError} {
		text := clip(strings.TrimSpace(query.Get(string(kind))))
		if text == "" {
			continue
		}
		messages = append(messages, Message{Kind: kind, Text: text})
	}
	return messages
}

func clip(text string) string {
	if utf8.RuneCountInString(text) <= maxTextLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxTextLength])
}
