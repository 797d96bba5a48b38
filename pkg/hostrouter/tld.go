package hostrouter

import "regexp"

// ipv4Pattern matches dotted IPv4 literals inside a host.
var ipv4Pattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)\.(\d+)`)

// knownTLDs holds the top-level domain labels trimmed during generic extraction.
// Hosts under any other TLD keep it as their last label.
var knownTLDs = map[string]struct{}{
	"com": {}, "net": {}, "org": {}, "tr": {}, "edu": {}, "gov": {}, "io": {}, "dev": {},
	"co": {}, "uk": {}, "info": {}, "biz": {}, "mil": {}, "int": {}, "arpa": {}, "name": {},
	"pro": {}, "aero": {}, "coop": {}, "museum": {}, "mobi": {}, "asia": {}, "tel": {},
	"cat": {}, "jobs": {}, "travel": {}, "us": {}, "ca": {}, "de": {}, "fr": {}, "au": {},
	"jp": {}, "cn": {}, "ru": {}, "br": {}, "it": {}, "es": {}, "nl": {}, "se": {},
	"no": {}, "fi": {}, "dk": {}, "pl": {}, "ch": {}, "be": {}, "at": {},
}

// IsKnownTLD reports whether label is one of the recognized top-level domains.
// The check is case-sensitive.
func IsKnownTLD(label string) bool {
	_, ok := knownTLDs[label]
	return ok
}
