package tracing

import (
	"sync"

	"github.com/mfbridge/mfbridge/bridge"
	"github.com/mfbridge/mfbridge/sim"
)

// CountTracer counts how many times each hook position fired and how many
// times each command rule matched.
type CountTracer struct {
	lock       sync.Mutex
	names      []string
	counts     map[string]uint64
	ruleNames  []string
	ruleCounts map[string]uint64
}

// NewCountTracer creates a new CountTracer.
func NewCountTracer() *CountTracer {
	return &CountTracer{
		counts:     make(map[string]uint64),
		ruleCounts: make(map[string]uint64),
	}
}

// Func counts the hook.
func (t *CountTracer) Func(ctx sim.HookCtx) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.names = count(t.counts, t.names, ctx.Pos.Name)

	if e, ok := ctx.Item.(bridge.CommandEvent); ok {
		t.ruleNames = count(t.ruleCounts, t.ruleNames, e.Rule)
	}
}

func count(counts map[string]uint64, names []string, name string) []string {
	if _, ok := counts[name]; !ok {
		names = append(names, name)
	}

	counts[name]++

	return names
}

// Names returns the hook positions seen, in the order they first fired.
func (t *CountTracer) Names() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return append([]string(nil), t.names...)
}

// Count returns how many times a hook position fired.
func (t *CountTracer) Count(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.counts[name]
}

// RuleCount returns how many commands matched a rule.
func (t *CountTracer) RuleCount(rule string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.ruleCounts[rule]
}

// Snapshot returns a copy of all counters. Rule counters are prefixed with
// "rule:".
func (t *CountTracer) Snapshot() map[string]uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	out := make(map[string]uint64, len(t.counts)+len(t.ruleCounts))
	for k, v := range t.counts {
		out[k] = v
	}

	for k, v := range t.ruleCounts {
		out["rule:"+k] = v
	}

	return out
}
