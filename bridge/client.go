package bridge

import (
	"github.com/mfbridge/mfbridge/sim"
)

// Channel name suffixes. A client named "MobiFlight" owns the channels
// "MobiFlight.LVars", "MobiFlight.Command" and so on.
const (
	DataChannelSuffix       = "LVars"
	CommandChannelSuffix    = "Command"
	ResponseChannelSuffix   = "Response"
	StringDataChannelSuffix = "StringVars"
)

// ChannelSet lists the channels owned by one client.
type ChannelSet struct {
	Data       sim.ChannelID
	Command    sim.ChannelID
	Response   sim.ChannelID
	StringData sim.ChannelID
}

// A FloatVar is a tracked numeric expression.
type FloatVar struct {
	SlotID     uint32
	Offset     int
	Expression string
	Value      float32
}

// A StringVar is a tracked textual expression.
type StringVar struct {
	SlotID     uint32
	Offset     int
	Expression string
	Value      string
}

// A Client is one external consumer of the bridge.
type Client struct {
	ID       uint32
	Name     string
	Channels ChannelSet

	ResponseDefinition sim.DefinitionID
	CommandDefinition  sim.DefinitionID

	FloatBase  uint32
	StringBase uint32

	FloatVars  []*FloatVar
	StringVars []*StringVar

	// ReadCursor indexes the float vars followed by the string vars.
	ReadCursor uint32

	// Degraded is set while the client's channels could not be set up.
	Degraded bool
	LastErr  error

	definedFloats  uint32
	definedStrings uint32
}

func newClient(layout Layout, id uint32, name string) *Client {
	return &Client{
		ID:                 id,
		Name:               name,
		Channels:           layout.Channels(id),
		ResponseDefinition: layout.ResponseDefinition(id),
		CommandDefinition:  layout.CommandDefinition(id),
		FloatBase:          layout.FloatBase(id),
		StringBase:         layout.StringBase(id),
	}
}

// ChannelName returns the host name of one of the client's channels.
func (c *Client) ChannelName(suffix string) string {
	return sim.BuildName(c.Name, suffix)
}

// NumVars returns the number of tracked variables of both kinds.
func (c *Client) NumVars() int {
	return len(c.FloatVars) + len(c.StringVars)
}

// MaxDefinedSlots returns how many slots have had their layout registered
// with the host. It never decreases, so clearing and re-adding the same
// variables does not register any new layout.
func (c *Client) MaxDefinedSlots() uint32 {
	return c.definedFloats + c.definedStrings
}

// Clear forgets every tracked variable and rewinds the read cursor. The
// registered layout is kept for reuse.
func (c *Client) Clear() {
	c.FloatVars = nil
	c.StringVars = nil
	c.ReadCursor = 0
}

func (c *Client) appendFloat(layout Layout, expr string) (*FloatVar, bool) {
	index := len(c.FloatVars)
	v := &FloatVar{
		SlotID:     c.FloatBase + uint32(index),
		Offset:     index * layout.SlotWidth(FloatKind),
		Expression: expr,
	}
	c.FloatVars = append(c.FloatVars, v)

	needsLayout := uint32(index) >= c.definedFloats
	if needsLayout {
		c.definedFloats = uint32(index) + 1
	}

	return v, needsLayout
}

func (c *Client) appendString(layout Layout, expr string) (*StringVar, bool) {
	index := len(c.StringVars)
	v := &StringVar{
		SlotID:     c.StringBase + uint32(index),
		Offset:     index * layout.SlotWidth(StringKind),
		Expression: expr,
	}
	c.StringVars = append(c.StringVars, v)

	needsLayout := uint32(index) >= c.definedStrings
	if needsLayout {
		c.definedStrings = uint32(index) + 1
	}

	return v, needsLayout
}

// varAt resolves a position in the logical concatenation of the float vars
// and the string vars. Exactly one of the results is non-nil.
func (c *Client) varAt(pos int) (*FloatVar, *StringVar) {
	if pos < len(c.FloatVars) {
		return c.FloatVars[pos], nil
	}

	return nil, c.StringVars[pos-len(c.FloatVars)]
}
