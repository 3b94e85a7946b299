package snap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVerify(t *testing.T) {
	t.Run("passes on identical files", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.txt")
		dst := filepath.Join(dir, "dst.txt")
		writeFile(t, src, []byte("same content"))
		writeFile(t, dst, []byte("same content"))

		record := CopyRecord{Source: src, Destination: dst}
		for _, useDigest := range []bool{false, true} {
			outcome := Verify(record, useDigest)
			if !outcome.OK {
				t.Errorf("Verify(useDigest=%v) = %+v, want pass", useDigest, outcome)
			}
		}
	})

	t.Run("fails missing when destination is gone", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.txt")
		writeFile(t, src, []byte("x"))

		outcome := Verify(CopyRecord{Source: src, Destination: filepath.Join(dir, "gone.txt")}, false)
		if outcome.OK || outcome.Reason != ReasonMissing {
			t.Errorf("Verify() = %+v, want reason %q", outcome, ReasonMissing)
		}
	})

	t.Run("fails missing when source is gone", func(t *testing.T) {
		dir := t.TempDir()
		dst := filepath.Join(dir, "dst.txt")
		writeFile(t, dst, []byte("x"))

		outcome := Verify(CopyRecord{Source: filepath.Join(dir, "gone.txt"), Destination: dst}, false)
		if outcome.OK || outcome.Reason != ReasonMissing {
			t.Errorf("Verify() = %+v, want reason %q", outcome, ReasonMissing)
		}
	})

	t.Run("fails size_mismatch on different lengths", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.txt")
		dst := filepath.Join(dir, "dst.txt")
		writeFile(t, src, []byte("long content"))
		writeFile(t, dst, []byte("short"))

		outcome := Verify(CopyRecord{Source: src, Destination: dst}, false)
		if outcome.OK || outcome.Reason != ReasonSizeMismatch {
			t.Errorf("Verify() = %+v, want reason %q", outcome, ReasonSizeMismatch)
		}
	})

	t.Run("size-only mode accepts equal-size different content", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.txt")
		dst := filepath.Join(dir, "dst.txt")
		writeFile(t, src, []byte("aaaa"))
		writeFile(t, dst, []byte("bbbb"))
		record := CopyRecord{Source: src, Destination: dst}

		// Documented weak guarantee of size-only verification.
		if outcome := Verify(record, false); !outcome.OK {
			t.Errorf("size-only Verify() = %+v, want pass", outcome)
		}
		// Digest mode rejects the same pair.
		if outcome := Verify(record, true); outcome.OK || outcome.Reason != ReasonDigestMismatch {
			t.Errorf("digest Verify() = %+v, want reason %q", outcome, ReasonDigestMismatch)
		}
	})

	t.Run("digest mode handles files larger than one chunk", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.bin")
		dst := filepath.Join(dir, "dst.bin")
		content := make([]byte, digestChunkSize*3+17)
		for i := range content {
			content[i] = byte(i % 251)
		}
		writeFile(t, src, content)
		writeFile(t, dst, content)

		if outcome := Verify(CopyRecord{Source: src, Destination: dst}, true); !outcome.OK {
			t.Errorf("Verify() = %+v, want pass", outcome)
		}

		// Flip one byte past the first chunk boundary.
		corrupted := append([]byte(nil), content...)
		corrupted[digestChunkSize+5] ^= 0xff
		writeFile(t, dst, corrupted)

		if outcome := Verify(CopyRecord{Source: src, Destination: dst}, true); outcome.OK || outcome.Reason != ReasonDigestMismatch {
			t.Errorf("Verify() = %+v, want reason %q", outcome, ReasonDigestMismatch)
		}
	})

	t.Run("read errors are failed outcomes, not fatal", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("permission checks are bypassed for root")
		}
		dir := t.TempDir()
		src := filepath.Join(dir, "src.txt")
		dst := filepath.Join(dir, "dst.txt")
		writeFile(t, src, []byte("xx"))
		writeFile(t, dst, []byte("xx"))
		if err := os.Chmod(dst, 0000); err != nil {
			t.Fatal(err)
		}

		outcome := Verify(CopyRecord{Source: src, Destination: dst}, true)
		if outcome.OK || outcome.Reason != ReasonReadError {
			t.Errorf("Verify() = %+v, want reason %q", outcome, ReasonReadError)
		}
	})
}
