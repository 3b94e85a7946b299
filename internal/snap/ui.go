package snap

// UI is the capability interface for the presentation layer. It gates the
// destructive transition with a confirmation and renders the run summary,
// keeping the core pipeline testable without a terminal.
type UI interface {
	// Confirm asks the user the given yes/no question and reports whether
	// they answered yes. Implementations must default to no.
	Confirm(prompt string) bool

	// Report renders the run summary.
	Report(summary *Summary)
}
