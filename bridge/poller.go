package bridge

import "fmt"

// DefaultMaxVarsPerFrame is the default poll budget per client and frame.
const DefaultMaxVarsPerFrame = 30

type slotRefresher interface {
	// refreshFloat re-evaluates the variable and reports if it was written.
	refreshFloat(c *Client, v *FloatVar) bool

	// refreshString re-evaluates the variable and reports if it was written.
	refreshString(c *Client, v *StringVar) bool
}

// PollStats counts the work done by a poll.
type PollStats struct {
	Evaluations int
	Writes      int
}

func (s *PollStats) add(o PollStats) {
	s.Evaluations += o.Evaluations
	s.Writes += o.Writes
}

// A Poller refreshes tracked variables in a round robin fashion. Every frame
// it evaluates at most Budget variables of each client, continuing where the
// previous frame stopped, so every variable is revisited as long as frames
// keep coming.
type Poller struct {
	budget    int
	refresher slotRefresher
}

func newPoller(budget int, refresher slotRefresher) *Poller {
	return &Poller{budget: budget, refresher: refresher}
}

// Budget returns the maximum number of evaluations per client and frame.
func (p *Poller) Budget() int {
	return p.budget
}

// SetBudget changes the maximum number of evaluations per client and frame.
func (p *Poller) SetBudget(n int) error {
	if n < 1 {
		return fmt.Errorf("max vars per frame must be positive, got %d", n)
	}

	p.budget = n

	return nil
}

// Tick polls every client once. Degraded clients are skipped.
func (p *Poller) Tick(clients []*Client) PollStats {
	stats := PollStats{}

	for _, c := range clients {
		if c.Degraded {
			continue
		}

		stats.add(p.PollClient(c))
	}

	return stats
}

// PollClient evaluates min(NumVars, Budget) variables of the client starting
// at its read cursor.
func (p *Poller) PollClient(c *Client) PollStats {
	stats := PollStats{}

	total := c.NumVars()
	if total == 0 {
		c.ReadCursor = 0
		return stats
	}

	budget := min(total, p.budget)
	for i := 0; i < budget; i++ {
		total = c.NumVars()
		if total == 0 {
			c.ReadCursor = 0
			break
		}

		cursor := int(c.ReadCursor) % total

		wrote := false
		floatVar, stringVar := c.varAt(cursor)
		if floatVar != nil {
			wrote = p.refresher.refreshFloat(c, floatVar)
		} else {
			wrote = p.refresher.refreshString(c, stringVar)
		}

		stats.Evaluations++
		if wrote {
			stats.Writes++
		}

		c.ReadCursor = uint32((cursor + 1) % total)
	}

	return stats
}
