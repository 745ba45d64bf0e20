// Package tracing records what the communication core does, cycle by cycle.
package tracing

import (
	"fmt"
	"reflect"

	"github.com/pdqlab/pdqcore/sim"
)

// NamedHookable is an element that has a name and accepts hooks.
type NamedHookable interface {
	sim.Named
	sim.Hookable
}

type hookChecker interface {
	HasHook(hook sim.Hook) bool
}

// CollectTrace attaches a tracer to a domain. It panics if the tracer is
// already attached.
func CollectTrace(domain NamedHookable, tracer sim.Hook) {
	if c, ok := domain.(hookChecker); ok && c.HasHook(tracer) {
		panic(fmt.Sprintf("domain %s already has tracer %s",
			domain.Name(), reflect.TypeOf(tracer)))
	}

	domain.AcceptHook(tracer)
}

func locationOf(ctx sim.HookCtx) string {
	if named, ok := ctx.Domain.(sim.Named); ok {
		return named.Name()
	}

	return ""
}
