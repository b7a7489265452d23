// Package requestmeta resolves request scheme and origin for cookie and CSRF
// decisions.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how the request scheme is resolved.
//
// X-Forwarded-Proto is only honored when TrustForwardedProto is set, which
// should be limited to deployments behind a proxy that overwrites the header.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// IsHTTPS reports whether the request arrived over HTTPS under policy.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return Scheme(r, policy) == "https"
}

// Scheme returns "http" or "https" for the request.
func Scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedProto {
		switch forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded {
		case "http", "https":
			return forwarded
		}
	}
	if r.URL != nil {
		switch scheme := strings.ToLower(r.URL.Scheme); scheme {
		case "http", "https":
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// HasSameOriginProof reports whether the Origin header, or the Referer when
// Origin is absent, names the same scheme, host and port as the request.
func HasSameOriginProof(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	host := r.Host
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}
	self, ok := origin(Scheme(r, policy), host)
	if !ok {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	parsed, err := url.Parse(claimed)
	if err != nil {
		return false
	}
	other, ok := origin(parsed.Scheme, parsed.Host)
	return ok && other == self
}

// origin normalizes scheme and host into scheme://host:port.
func origin(scheme, rawHost string) (string, bool) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	parsed, err := url.Parse("//" + strings.TrimSpace(rawHost))
	if err != nil {
		return "", false
	}
	host := strings.ToLower(parsed.Hostname())
	if scheme == "" || host == "" {
		return "", false
	}
	port := parsed.Port()
	if port == "" {
		switch scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			return "", false
		}
	}
	return scheme + "://" + host + ":" + port, true
}
