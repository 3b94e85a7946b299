package snap

import (
	"path/filepath"
	"strings"
)

// ExclusionSet holds bare names (not paths) that must never be copied or
// deleted: the running executable's own filename and the backup directory's
// name. It is computed once per run, before any copy begins, and reused
// unchanged through deletion.
type ExclusionSet map[string]struct{}

// NewExclusionSet builds a set from the given names. Empty names are ignored.
func NewExclusionSet(names ...string) ExclusionSet {
	set := make(ExclusionSet, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Excluded reports whether the bare name is in the set.
func (s ExclusionSet) Excluded(name string) bool {
	_, ok := s[name]
	return ok
}

// ExcludedPath reports whether any segment of the slash- or
// separator-delimited relative path matches an excluded name. A directory
// deep in the tree whose name equals the backup directory's name excludes
// its whole subtree. Only actual path separators split segments, so a
// filename that merely contains a backslash cannot spuriously match.
func (s ExclusionSet) ExcludedPath(relPath string) bool {
	if len(s) == 0 || relPath == "" || relPath == "." {
		return false
	}
	for _, part := range strings.FieldsFunc(relPath, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	}) {
		if s.Excluded(part) {
			return true
		}
	}
	return false
}
