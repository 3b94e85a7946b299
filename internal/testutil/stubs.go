// Package testutil provides deterministic stand-ins for the snap package's
// injected dependencies.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"dirsnap/internal/snap"
)

// StubClock returns a fixed time. Safe for concurrent use.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStubClock creates a StubClock set to the given time.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock set to 2024-01-15 10:30:00 UTC.
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// StubIDGenerator returns sequential IDs: "id-1", "id-2", etc.
type StubIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	g.counter++
	id := fmt.Sprintf("id-%d", g.counter)
	g.mu.Unlock()
	return id
}

// StubUI is a snap.UI that answers Confirm with a canned value and records
// what it was asked and shown.
type StubUI struct {
	Answer    bool
	Prompts   []string
	Summaries []*snap.Summary
}

func NewStubUI(answer bool) *StubUI {
	return &StubUI{Answer: answer}
}

func (u *StubUI) Confirm(prompt string) bool {
	u.Prompts = append(u.Prompts, prompt)
	return u.Answer
}

func (u *StubUI) Report(summary *snap.Summary) {
	u.Summaries = append(u.Summaries, summary)
}

// Compile-time checks
var (
	_ snap.Clock       = (*StubClock)(nil)
	_ snap.IDGenerator = (*StubIDGenerator)(nil)
	_ snap.UI          = (*StubUI)(nil)
)
