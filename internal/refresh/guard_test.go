package refresh_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carteira-app/carteira/internal/refresh"
)

func TestGuard_LatestTicketIsCurrent(t *testing.T) {
	var g refresh.Guard
	ticket := g.Begin()
	assert.True(t, g.Still(ticket))
}

func TestGuard_NewCycleSupersedesOld(t *testing.T) {
	var g refresh.Guard
	first := g.Begin()
	second := g.Begin()

	assert.False(t, g.Still(first))
	assert.True(t, g.Still(second))
}

func TestGuard_CancelInvalidatesAll(t *testing.T) {
	var g refresh.Guard
	ticket := g.Begin()
	g.Cancel()
	assert.False(t, g.Still(ticket))
}

func TestGuard_ConcurrentBegins(t *testing.T) {
	var g refresh.Guard
	var wg sync.WaitGroup
	tickets := make([]refresh.Ticket, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tickets[i] = g.Begin()
		}(i)
	}
	wg.Wait()

	// Exactly one ticket survives as current.
	current := 0
	seen := make(map[refresh.Ticket]bool)
	for _, ticket := range tickets {
		assert.False(t, seen[ticket], "duplicate ticket %d", ticket)
		seen[ticket] = true
		if g.Still(ticket) {
			current++
		}
	}
	assert.Equal(t, 1, current)
}
