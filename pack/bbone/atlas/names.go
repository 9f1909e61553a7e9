package atlas

import (
	"strings"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// NormalizeName reduces an authored part name to its atlas form: path
// prefix dropped, trailing image extension dropped, whitespace trimmed.
func NormalizeName(raw string) string {
	n := strings.TrimSpace(raw)
	if n == "" {
		return ""
	}
	if i := strings.LastIndexByte(n, '/'); i >= 0 {
		n = n[i+1:]
	}
	if i := strings.LastIndexByte(n, '\\'); i >= 0 {
		n = n[i+1:]
	}
	lower := strings.ToLower(n)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			n = n[:len(n)-len(ext)]
			break
		}
	}
	return strings.TrimSpace(n)
}

// ResolveName normalizes raw and applies the caller alias mapping. Pure
// function of its arguments; catalog matching is up to the caller.
func ResolveName(raw string, aliases map[string]string) string {
	n := NormalizeName(raw)
	if n == "" {
		return ""
	}
	if to, ok := aliases[n]; ok {
		return to
	}
	return n
}

// NormalizeAliases rewrites both sides of an alias mapping into atlas form.
func NormalizeAliases(aliases map[string]string) map[string]string {
	if len(aliases) == 0 {
		return nil
	}
	out := make(map[string]string, len(aliases))
	for from, to := range aliases {
		out[NormalizeName(from)] = NormalizeName(to)
	}
	return out
}
