package hostrouter

import "net/http"

// GetHost returns the request host with the port stripped.
// Returns false if the Host header is missing or is not valid header text
// (visible ASCII, space or tab).
//
// Examples:
//
//	"example.com:8080" -> "example.com", true
//	"API.Example.com"  -> "API.Example.com", true
//	""                 -> "", false
func GetHost(r *http.Request) (string, bool) {
	return HostFromHeader(r.Host)
}

// HostFromHeader validates a raw Host header value and strips its port.
// Returns false for empty values and values that are not valid header text.
func HostFromHeader(raw string) (string, bool) {
	if raw == "" || !isHeaderText(raw) {
		return "", false
	}
	return StripPort(raw), true
}

// GetSubdomain extracts the subdomain of the request host.
// Known hosts take precedence over TLD-based extraction.
//
// Examples:
//
//	GetSubdomain(req) // req.Host = "api.example.com" -> "api", true
//	GetSubdomain(req) // req.Host = "example.com"     -> "", false
//	GetSubdomain(req, "example.co.uk") // req.Host = "a.b.example.co.uk" -> "a.b", true
func GetSubdomain(r *http.Request, knownHosts ...string) (string, bool) {
	host, ok := GetHost(r)
	if !ok {
		return "", false
	}
	return Extract(host, knownHosts)
}

func isHeaderText(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 0x20 || c > 0x7e) && c != '\t' {
			return false
		}
	}
	return true
}
