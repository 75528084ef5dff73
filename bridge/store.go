package bridge

import (
	"fmt"
	"sort"

	"github.com/mfbridge/mfbridge/sim"
)

// DefaultMaxNameScan bounds the number of host variable names listed.
const DefaultMaxNameScan = 1000

// AddFloat starts tracking a numeric expression for the client and writes
// its first value. It returns the slot id of the new variable.
func (b *Bridge) AddFloat(c *Client, expr string) (uint32, error) {
	if len(c.FloatVars) >= b.layout.Capacity(FloatKind) {
		return 0, fmt.Errorf("%w: client %q tracks %d float vars",
			ErrCapacity, c.Name, len(c.FloatVars))
	}

	v, needsLayout := c.appendFloat(b.layout, expr)
	if needsLayout {
		b.defineSlot(c, c.Channels.Data, v.SlotID, v.Offset, floatSize)
	}

	b.writeFloat(c, v, 0)

	v.Value = float32(b.namespace.Evaluate(expr))
	b.writeFloat(c, v, v.Value)

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosVarAdded,
		Item: VarEvent{
			Client:     c,
			Kind:       FloatKind,
			SlotID:     v.SlotID,
			Expression: expr,
			FloatValue: v.Value,
		},
	})

	return v.SlotID, nil
}

// AddString starts tracking a textual expression for the client and writes
// its first value. It returns the slot id of the new variable.
func (b *Bridge) AddString(c *Client, expr string) (uint32, error) {
	if len(c.StringVars) >= b.layout.Capacity(StringKind) {
		return 0, fmt.Errorf("%w: client %q tracks %d string vars",
			ErrCapacity, c.Name, len(c.StringVars))
	}

	width := b.layout.SlotWidth(StringKind)

	v, needsLayout := c.appendString(b.layout, expr)
	if needsLayout {
		b.defineSlot(c, c.Channels.StringData, v.SlotID, v.Offset, width)
	}

	b.writeString(c, v, "")

	v.Value = b.evaluateString(expr)
	b.writeString(c, v, v.Value)

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosVarAdded,
		Item: VarEvent{
			Client:      c,
			Kind:        StringKind,
			SlotID:      v.SlotID,
			Expression:  expr,
			StringValue: v.Value,
		},
	})

	return v.SlotID, nil
}

// Clear stops tracking every variable of the client. Slot layouts
// already registered with the host are reused by later additions.
func (b *Bridge) Clear(c *Client) {
	c.Clear()

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosVarsCleared,
		Item:   c,
	})
}

// ReadAllNames lists the host variable names in lexicographic order.
func (b *Bridge) ReadAllNames() []string {
	names := append([]string(nil), b.namespace.EnumerateNames(b.maxNameScan)...)
	sort.Strings(names)

	return names
}

func (b *Bridge) refreshFloat(c *Client, v *FloatVar) bool {
	value := float32(b.namespace.Evaluate(v.Expression))
	if sameFloat(value, v.Value) {
		return false
	}

	v.Value = value
	b.writeFloat(c, v, value)

	return true
}

func (b *Bridge) refreshString(c *Client, v *StringVar) bool {
	value := b.evaluateString(v.Expression)
	if value == v.Value {
		return false
	}

	v.Value = value
	b.writeString(c, v, value)

	return true
}

func (b *Bridge) evaluateString(expr string) string {
	width := b.layout.SlotWidth(StringKind)
	value := b.namespace.EvaluateString(expr, b.layout.MaxStringLen)

	return truncateText(value, width)
}

func (b *Bridge) defineSlot(
	c *Client,
	channel sim.ChannelID,
	slotID uint32,
	offset, length int,
) {
	err := b.transport.DefineLayout(
		channel, sim.DefinitionID(slotID), offset, length)
	if err != nil {
		b.reportTransportError(c.Name, "define slot layout",
			channel, sim.DefinitionID(slotID), err)
	}
}

func (b *Bridge) writeFloat(c *Client, v *FloatVar, value float32) {
	channel := c.Channels.Data
	definition := sim.DefinitionID(v.SlotID)

	err := b.transport.Write(channel, definition, encodeFloat(value))
	if err != nil {
		b.reportTransportError(c.Name, "write float var", channel, definition, err)
		return
	}

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosVarWritten,
		Item: VarEvent{
			Client:     c,
			Kind:       FloatKind,
			SlotID:     v.SlotID,
			Expression: v.Expression,
			FloatValue: value,
		},
	})
}

func (b *Bridge) writeString(c *Client, v *StringVar, value string) {
	channel := c.Channels.StringData
	definition := sim.DefinitionID(v.SlotID)
	data := encodeText(value, b.layout.SlotWidth(StringKind))

	err := b.transport.Write(channel, definition, data)
	if err != nil {
		b.reportTransportError(c.Name, "write string var", channel, definition, err)
		return
	}

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosVarWritten,
		Item: VarEvent{
			Client:      c,
			Kind:        StringKind,
			SlotID:      v.SlotID,
			Expression:  v.Expression,
			StringValue: value,
		},
	})
}

func (b *Bridge) reportTransportError(
	client string,
	op string,
	channel sim.ChannelID,
	definition sim.DefinitionID,
	err error,
) {
	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosTransportError,
		Item: &TransportError{
			Op:         op,
			Client:     client,
			Channel:    channel,
			Definition: definition,
			Err:        err,
		},
	})
}
