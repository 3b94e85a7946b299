package snap

import (
	"runtime"
	"testing"
)

func TestExclusionSet_Excluded(t *testing.T) {
	set := NewExclusionSet("backup_20240115_103000", "dirsnap")

	tests := []struct {
		name string
		want bool
	}{
		{"backup_20240115_103000", true},
		{"dirsnap", true},
		{"a.txt", false},
		{"backup", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := set.Excluded(tt.name); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExclusionSet_ExcludedPath(t *testing.T) {
	set := NewExclusionSet("backup_1")

	tests := []struct {
		relPath string
		want    bool
	}{
		{"backup_1", true},
		{"sub/backup_1", true},
		{"backup_1/inner/file.txt", true},
		{"deep/backup_1/file.txt", true},
		{"sub/file.txt", false},
		{"backup_10/file.txt", false},
		{".", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := set.ExcludedPath(tt.relPath); got != tt.want {
			t.Errorf("ExcludedPath(%q) = %v, want %v", tt.relPath, got, tt.want)
		}
	}
}

func TestExclusionSet_ExcludedPath_BackslashInFilename(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on windows")
	}

	set := NewExclusionSet("dirsnap")

	// On Unix a backslash is an ordinary filename character. A file named
	// `a\dirsnap` is a single segment and must not match the exclusion.
	if set.ExcludedPath(`a\dirsnap`) {
		t.Error(`ExcludedPath("a\dirsnap") = true, want false`)
	}
	if !set.ExcludedPath("sub/dirsnap") {
		t.Error(`ExcludedPath("sub/dirsnap") = false, want true`)
	}
}

func TestNewExclusionSet_SkipsEmptyNames(t *testing.T) {
	set := NewExclusionSet("", "x")
	if len(set) != 1 {
		t.Errorf("len(set) = %d, want 1", len(set))
	}
	if set.Excluded("") {
		t.Error("Excluded(\"\") = true, want false")
	}
}
