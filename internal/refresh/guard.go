// Package refresh stamps screen refresh cycles with a monotonically
// increasing sequence number. The backend exposes balance and
// transaction history on independent endpoints with no shared version
// token, so a screen can pair a balance from time T2 with a list from
// T1 < T2. Composing services begin a cycle, fetch both pieces under
// the same ticket, and discard any result whose ticket has been
// superseded before publishing it.
package refresh

import "sync/atomic"

// Guard issues refresh tickets for one screen. Zero value is ready.
type Guard struct {
	seq atomic.Uint64
}

// Ticket identifies one refresh cycle.
type Ticket uint64

// Begin starts a new refresh cycle, invalidating all earlier tickets.
func (g *Guard) Begin() Ticket {
	return Ticket(g.seq.Add(1))
}

// Still reports whether the ticket belongs to the latest cycle.
// Results fetched under a stale ticket must be dropped, not rendered.
func (g *Guard) Still(t Ticket) bool {
	return uint64(t) == g.seq.Load()
}

// Cancel invalidates every outstanding ticket without starting a new
// cycle, for screens navigated away from mid-fetch.
func (g *Guard) Cancel() {
	g.seq.Add(1)
}
