package bridge

// A ClientSnapshot is a copy of the state of one client, taken while no
// event is being handled.
type ClientSnapshot struct {
	ID              uint32
	Name            string
	Channels        ChannelSet
	FloatBase       uint32
	StringBase      uint32
	FloatVars       []FloatVar
	StringVars      []StringVar
	ReadCursor      uint32
	MaxDefinedSlots uint32
	Degraded        bool
	LastErr         string
}

func snapshotOf(c *Client) ClientSnapshot {
	s := ClientSnapshot{
		ID:              c.ID,
		Name:            c.Name,
		Channels:        c.Channels,
		FloatBase:       c.FloatBase,
		StringBase:      c.StringBase,
		FloatVars:       make([]FloatVar, 0, len(c.FloatVars)),
		StringVars:      make([]StringVar, 0, len(c.StringVars)),
		ReadCursor:      c.ReadCursor,
		MaxDefinedSlots: c.MaxDefinedSlots(),
		Degraded:        c.Degraded,
	}

	for _, v := range c.FloatVars {
		s.FloatVars = append(s.FloatVars, *v)
	}

	for _, v := range c.StringVars {
		s.StringVars = append(s.StringVars, *v)
	}

	if c.LastErr != nil {
		s.LastErr = c.LastErr.Error()
	}

	return s
}

// Snapshot copies the state of every client in registration order.
func (b *Bridge) Snapshot() []ClientSnapshot {
	b.lock.Lock()
	defer b.lock.Unlock()

	clients := b.registry.All()
	snapshots := make([]ClientSnapshot, 0, len(clients))

	for _, c := range clients {
		snapshots = append(snapshots, snapshotOf(c))
	}

	return snapshots
}

// SnapshotClient copies the state of the named client.
func (b *Bridge) SnapshotClient(name string) (ClientSnapshot, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()

	c, found := b.registry.FindByName(name)
	if !found {
		return ClientSnapshot{}, false
	}

	return snapshotOf(c), true
}
