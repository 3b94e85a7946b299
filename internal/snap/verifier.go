package snap

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// digestChunkSize bounds memory while hashing arbitrarily large files.
const digestChunkSize = 8192

// Verify proves that a record's destination is a faithful copy of its source.
//
// It fails with ReasonMissing if either file no longer exists (concurrent
// external modification), ReasonSizeMismatch if byte lengths differ, and,
// when useDigest is set, ReasonDigestMismatch if the SHA-256 digests differ.
// With useDigest false, equal size is sufficient to pass; this is the fast,
// weaker guarantee that cannot detect same-size content corruption.
//
// Any read or stat error is reported as a failed Outcome, never as an error:
// a verification failure blocks deletion of that one file only.
func Verify(record CopyRecord, useDigest bool) Outcome {
	srcInfo, err := os.Stat(record.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return Outcome{Reason: ReasonMissing}
		}
		return Outcome{Reason: ReasonReadError}
	}
	dstInfo, err := os.Stat(record.Destination)
	if err != nil {
		if os.IsNotExist(err) {
			return Outcome{Reason: ReasonMissing}
		}
		return Outcome{Reason: ReasonReadError}
	}

	if srcInfo.Size() != dstInfo.Size() {
		return Outcome{Reason: ReasonSizeMismatch}
	}
	if !useDigest {
		return Outcome{OK: true}
	}

	srcSum, err := fileDigest(record.Source)
	if err != nil {
		return Outcome{Reason: ReasonReadError}
	}
	dstSum, err := fileDigest(record.Destination)
	if err != nil {
		return Outcome{Reason: ReasonReadError}
	}
	if srcSum != dstSum {
		return Outcome{Reason: ReasonDigestMismatch}
	}
	return Outcome{OK: true}
}

// fileDigest returns the SHA-256 checksum of the file as a lowercase hex
// string, streaming the content in fixed-size chunks.
func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, digestChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hashing file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
