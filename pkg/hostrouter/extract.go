package hostrouter

import "strings"

// StripPort returns the host without its port.
// Everything from the first colon on is dropped.
//
// Examples:
//
//	"example.com:8080" -> "example.com"
//	"localhost"        -> "localhost"
func StripPort(host string) string {
	if before, _, ok := strings.Cut(host, ":"); ok {
		return before
	}
	return host
}

// Extract returns the subdomain of a port-less host.
// Known hosts are tried first, in order; if none matches the host
// falls through to TLD-based extraction.
// Returns false when the host has no subdomain.
func Extract(host string, knownHosts []string) (string, bool) {
	if sub, ok := matchKnownHost(host, knownHosts); ok {
		return sub, true
	}
	return extractGeneric(host)
}

// ExtractFromHeader strips the port from a raw Host header value and
// extracts the subdomain from the rest.
func ExtractFromHeader(raw string, knownHosts []string) (string, bool) {
	return Extract(StripPort(raw), knownHosts)
}

// matchKnownHost finds the first known host that host ends with,
// separated from the rest by a dot. The part before the dot is the subdomain.
func matchKnownHost(host string, knownHosts []string) (string, bool) {
	for _, known := range knownHosts {
		if !strings.HasSuffix(host, known) {
			continue
		}
		rest := len(host) - len(known)
		if rest > 0 && host[rest-1] == '.' {
			return host[:rest-1], true
		}
	}
	return "", false
}

// extractGeneric splits host into labels and treats everything before
// the apex label as the subdomain.
func extractGeneric(host string) (string, bool) {
	// 10.0.0.1 must stay one label: "10_0_0_1"
	host = ipv4Pattern.ReplaceAllString(host, "${1}_${2}_${3}_${4}")

	labels := strings.Split(host, ".")
	if IsKnownTLD(labels[len(labels)-1]) {
		labels = labels[:len(labels)-1]
	}
	if len(labels) < 2 {
		return "", false
	}
	return strings.Join(labels[:len(labels)-1], "."), true
}
