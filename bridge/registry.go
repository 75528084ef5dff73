package bridge

import (
	"fmt"

	"github.com/mfbridge/mfbridge/sim"
)

// A Registry maps client names to clients. Clients are never removed, so a
// client id stays valid for the lifetime of the registry.
type Registry struct {
	layout    Layout
	transport sim.Transport
	hooks     sim.Hookable

	clients []*Client
	byName  map[string]*Client
}

// NewRegistry creates an empty registry. Transport failures are reported
// through the hooks of the given hookable.
func NewRegistry(
	layout Layout,
	transport sim.Transport,
	hooks sim.Hookable,
) *Registry {
	return &Registry{
		layout:    layout,
		transport: transport,
		hooks:     hooks,
		byName:    make(map[string]*Client),
	}
}

// Register returns the client with the given name, creating it and its
// channels if needed. Registering an existing name returns the same client
// unchanged, which lets a client reconnect without the bridge noticing.
//
// If the host refuses to set up the channels, the client is still kept but
// marked as degraded. Registering a degraded client again retries the setup.
func (r *Registry) Register(name string) (*Client, error) {
	if err := sim.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClientName, err)
	}

	if c, found := r.byName[name]; found {
		if c.Degraded {
			r.setupChannels(c)
		}

		return c, nil
	}

	if uint64(len(r.clients)) >= uint64(r.layout.MaxClients) {
		return nil, fmt.Errorf("%w: cannot register %q, %d clients at most",
			ErrCapacity, name, r.layout.MaxClients)
	}

	c := newClient(r.layout, uint32(len(r.clients)), name)
	r.clients = append(r.clients, c)
	r.byName[name] = c

	r.setupChannels(c)

	r.hooks.InvokeHook(sim.HookCtx{
		Domain: r.hooks,
		Pos:    HookPosClientRegistered,
		Item:   c,
	})

	return c, nil
}

// Find returns the client with the given id.
func (r *Registry) Find(id uint32) (*Client, bool) {
	if uint64(id) >= uint64(len(r.clients)) {
		return nil, false
	}

	return r.clients[id], true
}

// FindByName returns the client with the given name.
func (r *Registry) FindByName(name string) (*Client, bool) {
	c, found := r.byName[name]
	return c, found
}

// All returns the clients in registration order.
func (r *Registry) All() []*Client {
	return r.clients
}

// Count returns the number of registered clients.
func (r *Registry) Count() int {
	return len(r.clients)
}

type channelStep struct {
	op         string
	channel    sim.ChannelID
	definition sim.DefinitionID
	call       func() error
}

func (r *Registry) setupChannels(c *Client) {
	for _, step := range r.channelSteps(c) {
		err := step.call()
		if err == nil {
			continue
		}

		terr := &TransportError{
			Op:         step.op,
			Client:     c.Name,
			Channel:    step.channel,
			Definition: step.definition,
			Err:        err,
		}
		c.Degraded = true
		c.LastErr = terr

		r.hooks.InvokeHook(sim.HookCtx{
			Domain: r.hooks,
			Pos:    HookPosTransportError,
			Item:   terr,
		})

		return
	}

	c.Degraded = false
	c.LastErr = nil
}

func (r *Registry) channelSteps(c *Client) []channelStep {
	t := r.transport
	l := r.layout
	ch := c.Channels

	create := func(suffix string, id sim.ChannelID, size int) channelStep {
		return channelStep{
			op:      "create channel " + c.ChannelName(suffix),
			channel: id,
			call: func() error {
				return t.CreateChannel(c.ChannelName(suffix), id, size)
			},
		}
	}

	return []channelStep{
		create(DataChannelSuffix, ch.Data, l.FloatAreaSize),
		create(CommandChannelSuffix, ch.Command, l.MessageSize),
		create(ResponseChannelSuffix, ch.Response, l.MessageSize),
		create(StringDataChannelSuffix, ch.StringData, l.StringAreaSize),
		{
			op:         "define response layout",
			channel:    ch.Response,
			definition: c.ResponseDefinition,
			call: func() error {
				return t.DefineLayout(
					ch.Response, c.ResponseDefinition, 0, l.MessageSize)
			},
		},
		{
			op:         "define command layout",
			channel:    ch.Command,
			definition: c.CommandDefinition,
			call: func() error {
				return t.DefineLayout(
					ch.Command, c.CommandDefinition, 0, l.MessageSize)
			},
		},
		{
			op:         "subscribe to commands",
			channel:    ch.Command,
			definition: c.CommandDefinition,
			call: func() error {
				return t.SubscribeChanges(
					ch.Command, c.CommandDefinition, c.ID)
			},
		},
	}
}
