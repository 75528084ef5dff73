// Package tracing records what happens inside a bridge.
package tracing

import (
	"fmt"
	"reflect"

	"github.com/mfbridge/mfbridge/sim"
)

// NamedHookable is a hookable object that can list its hooks.
type NamedHookable interface {
	sim.Named
	sim.Hookable
	Hooks() []sim.Hook
}

// CollectTrace lets the tracer collect traces from a domain. A tracer can
// only be attached to a domain once.
func CollectTrace(domain NamedHookable, tracer sim.Hook) {
	for _, hook := range domain.Hooks() {
		if hook == tracer {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	domain.AcceptHook(tracer)
}
