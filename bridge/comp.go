package bridge

import (
	"strconv"
	"sync"

	"github.com/mfbridge/mfbridge/eventtable"
	"github.com/mfbridge/mfbridge/sim"
)

// A Bridge exposes host variables to external clients. It handles frame
// events by polling the tracked variables, client data events by running
// commands, and mapped events by executing the code of the event table.
type Bridge struct {
	sim.HookableBase

	lock sync.Mutex

	name       string
	layout     Layout
	transport  sim.Transport
	namespace  sim.Namespace
	registry   *Registry
	poller     *Poller
	dispatcher *Dispatcher
	grammar    Grammar
	events     *eventtable.Table

	defaultClient *Client
	maxNameScan   int
	frames        uint64
}

// Name returns the name of the bridge.
func (b *Bridge) Name() string {
	return b.name
}

// Handle processes one host event. It never fails; problems are reported
// through hooks.
func (b *Bridge) Handle(e sim.Event) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	switch e := e.(type) {
	case sim.FrameEvent:
		b.handleFrame()
	case *sim.FrameEvent:
		b.handleFrame()
	case sim.ClientDataEvent:
		b.handleClientData(e.RequestID, e.Data)
	case *sim.ClientDataEvent:
		b.handleClientData(e.RequestID, e.Data)
	case sim.MappedEvent:
		b.handleMappedEvent(e.EventID)
	case *sim.MappedEvent:
		b.handleMappedEvent(e.EventID)
	}

	return nil
}

func (b *Bridge) handleFrame() {
	b.frames++
	stats := b.poller.Tick(b.registry.All())

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosFramePolled,
		Item: FrameReport{
			Frame:       b.frames,
			Evaluations: stats.Evaluations,
			Writes:      stats.Writes,
		},
	})
}

func (b *Bridge) handleClientData(requestID uint32, data []byte) {
	text := decodeText(data)

	sender, found := b.registry.Find(requestID)
	if !found {
		b.drop(requestID, nil, text, "unknown client")
		return
	}

	if _, matched := b.dispatcher.Dispatch(sender, text); !matched {
		b.drop(requestID, sender, text, "unknown command")
	}
}

func (b *Bridge) handleMappedEvent(eventID uint32) {
	entry, found := b.events.Lookup(eventID)
	if !found {
		b.drop(eventID, nil, "", "unknown event id "+
			strconv.FormatUint(uint64(eventID), 10))
		return
	}

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosMappedEvent,
		Item: MappedEventRecord{
			EventID: eventID,
			Name:    entry.Name,
			Code:    entry.Code,
		},
	})

	b.namespace.Execute(entry.Code)
}

func (b *Bridge) drop(requestID uint32, c *Client, text, reason string) {
	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosCommandDropped,
		Item: DropEvent{
			RequestID: requestID,
			Client:    c,
			Text:      text,
			Reason:    reason,
		},
	})
}

func (b *Bridge) respond(c *Client, text string) {
	data := encodeText(text, b.layout.MessageSize)

	err := b.transport.Write(c.Channels.Response, c.ResponseDefinition, data)
	if err != nil {
		b.reportTransportError(c.Name, "write response",
			c.Channels.Response, c.ResponseDefinition, err)
		return
	}

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosResponse,
		Item:   ResponseEvent{Client: c, Text: truncateText(text, len(data))},
	})
}

func (b *Bridge) buildDispatcher() {
	g := b.grammar
	d := &Dispatcher{}

	d.Exact("ping", g.Ping, b.command("ping", g.Ping, b.ping))
	d.Exact("clear", g.Clear, b.command("clear", g.Clear, b.clearVars))
	d.Exact("list", g.List, b.command("list", g.List, b.listNames))
	d.Prefix("set", g.SetPrefix,
		b.command("set", g.SetPrefix, b.setVar))
	d.Prefix("addstring", g.AddStringPrefix,
		b.command("addstring", g.AddStringPrefix, b.addStringVar))
	d.Prefix("add", g.AddPrefix,
		b.command("add", g.AddPrefix, b.addFloatVar))
	d.Prefix("clients.add", g.ClientsAddPrefix,
		b.command("clients.add", g.ClientsAddPrefix, b.addClient))
	d.Prefix("maxvarsperframe", g.SetBudgetPrefix,
		b.command("maxvarsperframe", g.SetBudgetPrefix, b.setMaxVars))
	d.Exact("version", g.VersionGet,
		b.command("version", g.VersionGet, b.version))

	b.dispatcher = d
}

func (b *Bridge) command(
	rule, prefix string,
	h CommandHandler,
) CommandHandler {
	return func(sender *Client, arg string) {
		b.InvokeHook(sim.HookCtx{
			Domain: b,
			Pos:    HookPosCommand,
			Item: CommandEvent{
				Client: sender,
				Rule:   rule,
				Text:   prefix + arg,
				Arg:    arg,
			},
		})

		h(sender, arg)
	}
}

func (b *Bridge) ping(sender *Client, _ string) {
	b.respond(sender, b.grammar.Pong)
}

func (b *Bridge) clearVars(sender *Client, _ string) {
	b.Clear(sender)
}

func (b *Bridge) listNames(sender *Client, _ string) {
	b.respond(sender, b.grammar.ListStart)

	for _, name := range b.ReadAllNames() {
		b.respond(sender, name)
	}

	b.respond(sender, b.grammar.ListEnd)
}

func (b *Bridge) setVar(_ *Client, expr string) {
	b.namespace.Execute(expr)
}

func (b *Bridge) addFloatVar(sender *Client, expr string) {
	if _, err := b.AddFloat(sender, expr); err != nil {
		b.drop(sender.ID, sender, b.grammar.AddPrefix+expr, err.Error())
	}
}

func (b *Bridge) addStringVar(sender *Client, expr string) {
	if _, err := b.AddString(sender, expr); err != nil {
		b.drop(sender.ID, sender, b.grammar.AddStringPrefix+expr, err.Error())
	}
}

func (b *Bridge) addClient(sender *Client, name string) {
	c, err := b.registry.Register(name)
	if err != nil {
		b.drop(sender.ID, sender, b.grammar.ClientsAddPrefix+name, err.Error())
		return
	}

	b.respond(sender, b.grammar.ClientAdded(c))
}

func (b *Bridge) setMaxVars(sender *Client, arg string) {
	text := b.grammar.SetBudgetPrefix + arg

	n, err := strconv.Atoi(arg)
	if err != nil {
		b.drop(sender.ID, sender, text, "invalid max vars per frame")
		return
	}

	if err := b.poller.SetBudget(n); err != nil {
		b.drop(sender.ID, sender, text, err.Error())
		return
	}

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosConfigChanged,
		Item: ConfigEvent{
			Client: sender,
			Key:    "MaxVarsPerFrame",
			Value:  n,
		},
	})
}

func (b *Bridge) version(sender *Client, _ string) {
	b.respond(sender, b.grammar.VersionReply(Version))
}

// Registry returns the client registry. It must only be used from the
// goroutine that delivers events, or while no event is being handled.
func (b *Bridge) Registry() *Registry {
	return b.registry
}

// Layout returns the identifier layout in use.
func (b *Bridge) Layout() Layout {
	return b.layout
}

// Grammar returns the command grammar in use.
func (b *Bridge) Grammar() Grammar {
	return b.grammar
}

// DefaultClient returns the client registered when the bridge was built.
func (b *Bridge) DefaultClient() *Client {
	return b.defaultClient
}

// EventTable returns the static event table. It may be empty.
func (b *Bridge) EventTable() *eventtable.Table {
	return b.events
}

// Frames returns the number of frames handled.
func (b *Bridge) Frames() uint64 {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.frames
}

// MaxVarsPerFrame returns the current poll budget.
func (b *Bridge) MaxVarsPerFrame() int {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.poller.Budget()
}

// SetMaxVarsPerFrame changes the poll budget. It is safe to call while the
// host delivers events.
func (b *Bridge) SetMaxVarsPerFrame(n int) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	if err := b.poller.SetBudget(n); err != nil {
		return err
	}

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosConfigChanged,
		Item:   ConfigEvent{Key: "MaxVarsPerFrame", Value: n},
	})

	return nil
}
