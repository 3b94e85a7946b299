package snap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() Clock {
	return stubClock{t: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
}

type stubClock struct{ t time.Time }

func (c stubClock) Now() time.Time { return c.t }

func TestAllocateBackupDir(t *testing.T) {
	t.Run("creates timestamped directory", func(t *testing.T) {
		root := t.TempDir()

		got, err := AllocateBackupDir(root, "backup", fixedClock())
		if err != nil {
			t.Fatalf("AllocateBackupDir() error = %v", err)
		}

		want := filepath.Join(root, "backup_20240115_103000")
		if got != want {
			t.Errorf("AllocateBackupDir() = %q, want %q", got, want)
		}
		info, err := os.Stat(got)
		if err != nil {
			t.Fatalf("stat backup dir: %v", err)
		}
		if !info.IsDir() {
			t.Error("backup path is not a directory")
		}
	})

	t.Run("falls back to numeric probing on collision", func(t *testing.T) {
		root := t.TempDir()
		clock := fixedClock()

		first, err := AllocateBackupDir(root, "backup", clock)
		if err != nil {
			t.Fatalf("first AllocateBackupDir() error = %v", err)
		}
		second, err := AllocateBackupDir(root, "backup", clock)
		if err != nil {
			t.Fatalf("second AllocateBackupDir() error = %v", err)
		}

		if first == second {
			t.Fatalf("second allocation reused %q", first)
		}
		if want := filepath.Join(root, "backup_1"); second != want {
			t.Errorf("second allocation = %q, want %q", second, want)
		}

		// A third call in the same second probes past backup_1.
		third, err := AllocateBackupDir(root, "backup", clock)
		if err != nil {
			t.Fatalf("third AllocateBackupDir() error = %v", err)
		}
		if want := filepath.Join(root, "backup_2"); third != want {
			t.Errorf("third allocation = %q, want %q", third, want)
		}
	})

	t.Run("probing skips pre-existing numeric names", func(t *testing.T) {
		root := t.TempDir()
		clock := fixedClock()

		if _, err := AllocateBackupDir(root, "backup", clock); err != nil {
			t.Fatalf("AllocateBackupDir() error = %v", err)
		}
		if err := os.Mkdir(filepath.Join(root, "backup_1"), 0755); err != nil {
			t.Fatal(err)
		}

		got, err := AllocateBackupDir(root, "backup", clock)
		if err != nil {
			t.Fatalf("AllocateBackupDir() error = %v", err)
		}
		if want := filepath.Join(root, "backup_2"); got != want {
			t.Errorf("AllocateBackupDir() = %q, want %q", got, want)
		}
	})

	t.Run("returns AllocationError for non-collision failures", func(t *testing.T) {
		root := t.TempDir()
		// A regular file where the source root is expected makes Mkdir
		// fail with something other than "already exists".
		notADir := filepath.Join(root, "file")
		if err := os.WriteFile(notADir, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := AllocateBackupDir(notADir, "backup", fixedClock())
		if err == nil {
			t.Fatal("AllocateBackupDir() error = nil, want AllocationError")
		}
		var allocErr *AllocationError
		if !errors.As(err, &allocErr) {
			t.Errorf("error type = %T, want *AllocationError", err)
		}
	})
}
