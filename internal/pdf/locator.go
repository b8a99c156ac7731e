package pdf

import "strings"

// Resolve returns the first field name whose lowercased form contains any of
// the lowercased patterns, scanning names in their original template order.
// It reports false when nothing matches.
func Resolve(names []string, patterns []string) (string, bool) {
	if len(patterns) == 0 {
		return "", false
	}
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	for _, name := range names {
		ln := strings.ToLower(name)
		for _, p := range lowered {
			if strings.Contains(ln, p) {
				return name, true
			}
		}
	}
	return "", false
}

// locate resolves a field reference against a form: the exact path wins when
// the template still carries it, otherwise the pattern scan is the fallback.
// Exact paths are brittle across template revisions; the patterns keep the
// master-data section filling after a revision renames its paths.
func locate(form Form, ref FieldRef) (string, bool) {
	names := form.FieldNames()
	if ref.Path != "" {
		for _, name := range names {
			if name == ref.Path {
				return name, true
			}
		}
	}
	return Resolve(names, ref.Patterns)
}
