// Package link decides whether chat text points at a supported video host.
package link

import "strings"

// Hosts lists the host substrings treated as supported video links.
var Hosts = []string{"youtube.com", "youtu.be", "www.youtube.com", "m.youtube.com"}

// IsSupported reports whether any supported host appears in text, ignoring
// case. Scheme and path are not checked.
func IsSupported(text string) bool {
	lower := strings.ToLower(text)
	for _, host := range Hosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}
