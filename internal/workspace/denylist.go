package workspace

import "strings"

// denylist holds substrings associated with sensitive system locations and
// credential files. It is a coarse defense-in-depth layer behind the
// canonical containment check; the containment check remains the actual
// security decision.
var denylist = []string{
	"../",
	"/etc/",
	"/usr/",
	"/var/",
	"/root/",
	"/home/",
	"passwd",
	"shadow",
	"hosts",
	".ssh/",
}

// envLocalException is the one filename allowed to carry a traversal marker.
// The engine's own key file lives one level above some workspaces.
const envLocalException = ".env.local"

// matchDenylist scans the original, unresolved path string and returns the
// first matching pattern, or "" when the path is clean. Matching is
// case-insensitive.
func matchDenylist(raw string) string {
	lower := strings.ToLower(raw)
	for _, pattern := range denylist {
		if !strings.Contains(lower, pattern) {
			continue
		}
		if pattern == "../" && strings.Contains(lower, envLocalException) {
			continue
		}
		return pattern
	}
	return ""
}
