package bridge

import (
	"github.com/mfbridge/mfbridge/eventtable"
	"github.com/mfbridge/mfbridge/sim"
)

// DefaultClientName is the name of the client registered at startup.
const DefaultClientName = "MobiFlight"

// Builder can build bridges.
type Builder struct {
	transport       sim.Transport
	namespace       sim.Namespace
	layout          Layout
	maxVarsPerFrame int
	defaultClient   string
	grammar         Grammar
	events          *eventtable.Table
	maxNameScan     int
	hooks           []sim.Hook
}

// MakeBuilder returns a Builder with the default layout and grammar.
func MakeBuilder() Builder {
	return Builder{
		layout:          DefaultLayout(),
		maxVarsPerFrame: DefaultMaxVarsPerFrame,
		defaultClient:   DefaultClientName,
		grammar:         DefaultGrammar(),
		maxNameScan:     DefaultMaxNameScan,
	}
}

// WithTransport sets the shared memory transport of the host.
func (b Builder) WithTransport(t sim.Transport) Builder {
	b.transport = t
	return b
}

// WithNamespace sets the variable namespace of the host.
func (b Builder) WithNamespace(n sim.Namespace) Builder {
	b.namespace = n
	return b
}

// WithLayout sets the identifier layout.
func (b Builder) WithLayout(l Layout) Builder {
	b.layout = l
	return b
}

// WithMaxVarsPerFrame sets the initial poll budget.
func (b Builder) WithMaxVarsPerFrame(n int) Builder {
	b.maxVarsPerFrame = n
	return b
}

// WithDefaultClientName sets the name of the client registered at startup.
func (b Builder) WithDefaultClientName(name string) Builder {
	b.defaultClient = name
	return b
}

// WithGrammar sets the command grammar.
func (b Builder) WithGrammar(g Grammar) Builder {
	b.grammar = g
	return b
}

// WithEventTable sets the static events mapped at startup.
func (b Builder) WithEventTable(t *eventtable.Table) Builder {
	b.events = t
	return b
}

// WithMaxNameScan bounds the number of variable names listed.
func (b Builder) WithMaxNameScan(n int) Builder {
	b.maxNameScan = n
	return b
}

// WithHooks attaches hooks before the default client is registered, so the
// hooks observe the whole life of the bridge.
func (b Builder) WithHooks(hooks ...sim.Hook) Builder {
	b.hooks = append(append([]sim.Hook(nil), b.hooks...), hooks...)
	return b
}

// Build creates a bridge and registers its default client. It panics if the
// builder is misconfigured.
func (b Builder) Build(name string) *Bridge {
	sim.NameMustBeValid(name)
	b.mustBeValid()

	br := &Bridge{
		name:        name,
		layout:      b.layout,
		transport:   b.transport,
		namespace:   b.namespace,
		grammar:     b.grammar,
		events:      b.events,
		maxNameScan: b.maxNameScan,
	}

	if br.events == nil {
		br.events = &eventtable.Table{}
	}

	for _, h := range b.hooks {
		br.AcceptHook(h)
	}

	br.registry = NewRegistry(b.layout, b.transport, br)
	br.poller = newPoller(b.maxVarsPerFrame, br)
	br.buildDispatcher()

	c, err := br.registry.Register(b.defaultClient)
	if err != nil {
		panic(err)
	}

	br.defaultClient = c

	br.mapEvents()

	return br
}

func (b Builder) mustBeValid() {
	if b.transport == nil {
		panic("bridge requires a transport")
	}

	if b.namespace == nil {
		panic("bridge requires a namespace")
	}

	if b.maxVarsPerFrame < 1 {
		panic("max vars per frame must be positive")
	}

	if b.maxNameScan < 1 {
		panic("max name scan must be positive")
	}

	if b.grammar.ClientAdded == nil || b.grammar.VersionReply == nil {
		panic("grammar " + b.grammar.Name + " is incomplete")
	}

	b.layout.MustBeValid()
}

func (b *Bridge) mapEvents() {
	mapper, ok := b.transport.(sim.EventMapper)
	if !ok {
		return
	}

	for i, entry := range b.events.Entries {
		err := mapper.MapEvent(uint32(i), entry.HostName())
		if err != nil {
			b.reportTransportError("", "map event "+entry.HostName(),
				0, sim.DefinitionID(i), err)
		}
	}
}
