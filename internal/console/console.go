// Package console implements the terminal presentation layer: the
// destructive-action confirmation prompt and the end-of-run summary.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"dirsnap/internal/snap"
)

// maxReportedFailures caps the failure details shown in the summary.
const maxReportedFailures = 10

// Console renders prompts and summaries on a terminal.
type Console struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// New creates a Console bound to stdin/stdout. The confirmation prompt is
// only offered when stdin is a terminal.
func New() *Console {
	return &Console{
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewWithStreams creates a Console with explicit streams, treated as
// interactive. Used in tests.
func NewWithStreams(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out, interactive: true}
}

// Confirm prints the prompt and reads a y/N answer. It returns true only on
// an explicit "y" or "yes". A non-interactive stdin or a read failure
// declines.
func (c *Console) Confirm(prompt string) bool {
	if !c.interactive {
		fmt.Fprintln(c.out, "stdin is not a terminal; declining deletion")
		return false
	}

	fmt.Fprintf(c.out, "%s (y/N): ", prompt)
	answer, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Report renders the run summary: roots, mode lines, counts, and up to the
// first ten failure details.
func (c *Console) Report(summary *snap.Summary) {
	fmt.Fprintf(c.out, "Source directory : %s\n", summary.SourceRoot)
	fmt.Fprintf(c.out, "Backup directory : %s\n", summary.BackupRoot)
	fmt.Fprintf(c.out, "Recursive copy   : %s\n", yesNo(summary.Recursive))
	fmt.Fprintf(c.out, "Delete originals : %s\n", yesNo(summary.DeleteRequested))
	if summary.DeleteRequested {
		mode := "size-only"
		if summary.UseDigest {
			mode = "SHA-256"
		}
		fmt.Fprintf(c.out, "Verification mode: %s\n", mode)
		fmt.Fprintf(c.out, "Remove empty dirs: %s\n", yesNo(summary.PruneEmptyDirs))
	}

	fmt.Fprintf(c.out, "Copied %d file(s).\n", summary.Copied)
	if summary.Copied == 0 {
		fmt.Fprintln(c.out, "No files copied.")
		return
	}

	switch {
	case summary.ConfirmDeclined:
		fmt.Fprintln(c.out, "Aborting deletion. Backup completed, originals kept.")
	case summary.DeleteRequested:
		fmt.Fprintf(c.out, "Deleted %d file(s).\n", summary.Deleted)
		if summary.Pruned > 0 {
			fmt.Fprintf(c.out, "Removed %d empty director(ies).\n", summary.Pruned)
		}
		if n := len(summary.Failures); n > 0 {
			fmt.Fprintf(c.out, "Failed to delete %d file(s). Details (first %d shown):\n", n, maxReportedFailures)
			for i, failure := range summary.Failures {
				if i == maxReportedFailures {
					break
				}
				fmt.Fprintf(c.out, " - %s reason: %s\n", failure.Path, failure.Reason)
			}
		} else {
			fmt.Fprintln(c.out, "All backed up files deleted successfully.")
		}
	default:
		fmt.Fprintln(c.out, "Backup completed. Originals kept (deletion not requested).")
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Compile-time check that Console implements snap.UI.
var _ snap.UI = (*Console)(nil)
