package queue

import "path"

// MatchNamespaces filters namespace names through the configured glob
// patterns and returns the matched set. The set is recomputed on every sweep;
// it is never cached across passes.
func MatchNamespaces(names []string, patterns []string) map[string]bool {
	matched := make(map[string]bool)
	for _, name := range names {
		if MatchesNamespace(name, patterns) {
			matched[name] = true
		}
	}
	return matched
}

// MatchesNamespace reports whether a namespace name matches any of the
// configured glob patterns. Malformed patterns never match; they are rejected
// earlier by config validation.
func MatchesNamespace(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
