package bridge

import (
	"fmt"
	"math"

	"github.com/mfbridge/mfbridge/sim"
)

// VarKind distinguishes the two kinds of tracked variables.
type VarKind uint32

// The kinds of tracked variables.
const (
	FloatKind VarKind = iota
	StringKind

	numVarKinds = 2
)

func (k VarKind) String() string {
	switch k {
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	default:
		return fmt.Sprintf("VarKind(%d)", uint32(k))
	}
}

const channelsPerClient = 4

// floatSize is the width of a float slot in bytes.
const floatSize = 4

// Layout partitions the host identifier space. Every function of a Layout is
// pure: the same client id always maps to the same channels, definitions and
// slot ranges, and no two clients or kinds share an identifier.
//
// Definition ids below VarOffset hold the per client response and command
// definitions (2*id and 2*id+1). From VarOffset on, every client owns
// 2*SlotRange ids: SlotRange float slots followed by SlotRange string slots.
type Layout struct {
	// VarOffset is the first definition id used for variable slots.
	VarOffset uint32

	// SlotRange is the number of definition ids reserved per client and kind.
	SlotRange uint32

	// MaxClients bounds the number of clients the layout can address.
	MaxClients uint32

	// MaxStringLen is the width of a string slot, NUL terminator included.
	MaxStringLen int

	// MessageSize is the width of command and response messages.
	MessageSize int

	// FloatAreaSize is the byte size of a client's float data channel.
	FloatAreaSize int

	// StringAreaSize is the byte size of a client's string data channel.
	StringAreaSize int
}

// DefaultLayout returns the layout used by the MobiFlight WASM module.
func DefaultLayout() Layout {
	return Layout{
		VarOffset:      1000,
		SlotRange:      10000,
		MaxClients:     100,
		MaxStringLen:   128,
		MessageSize:    1024,
		FloatAreaSize:  4096,
		StringAreaSize: 8192,
	}
}

// Base returns the first slot id of the given kind for the client.
func (l Layout) Base(clientID uint32, kind VarKind) uint32 {
	return l.VarOffset +
		clientID*numVarKinds*l.SlotRange +
		uint32(kind)*l.SlotRange
}

// FloatBase returns the first float slot id of the client.
func (l Layout) FloatBase(clientID uint32) uint32 {
	return l.Base(clientID, FloatKind)
}

// StringBase returns the first string slot id of the client.
func (l Layout) StringBase(clientID uint32) uint32 {
	return l.Base(clientID, StringKind)
}

// Channels returns the channel ids owned by the client.
func (l Layout) Channels(clientID uint32) ChannelSet {
	first := sim.ChannelID(channelsPerClient * clientID)

	return ChannelSet{
		Data:       first,
		Command:    first + 1,
		Response:   first + 2,
		StringData: first + 3,
	}
}

// ResponseDefinition returns the definition of the client's response area.
func (l Layout) ResponseDefinition(clientID uint32) sim.DefinitionID {
	return sim.DefinitionID(2 * clientID)
}

// CommandDefinition returns the definition of the client's command area.
func (l Layout) CommandDefinition(clientID uint32) sim.DefinitionID {
	return sim.DefinitionID(2*clientID + 1)
}

// Capacity returns how many variables of the kind fit in one client.
func (l Layout) Capacity(kind VarKind) int {
	var fit int

	switch kind {
	case FloatKind:
		fit = l.FloatAreaSize / floatSize
	case StringKind:
		fit = l.StringAreaSize / l.MaxStringLen
	default:
		return 0
	}

	if uint64(fit) > uint64(l.SlotRange) {
		return int(l.SlotRange)
	}

	return fit
}

// SlotWidth returns the width in bytes of one slot of the kind.
func (l Layout) SlotWidth(kind VarKind) int {
	if kind == StringKind {
		return l.MaxStringLen
	}

	return floatSize
}

// Validate reports a layout that cannot keep identifiers disjoint.
func (l Layout) Validate() error {
	switch {
	case l.SlotRange == 0:
		return fmt.Errorf("%w: slot range must be positive", ErrCapacity)
	case l.MaxClients == 0:
		return fmt.Errorf("%w: max clients must be positive", ErrCapacity)
	case l.MaxStringLen < 2:
		return fmt.Errorf("%w: max string length must be at least 2",
			ErrCapacity)
	case l.MessageSize < 2:
		return fmt.Errorf("%w: message size must be at least 2", ErrCapacity)
	case l.FloatAreaSize < floatSize || l.StringAreaSize < l.MaxStringLen:
		return fmt.Errorf("%w: data areas must hold at least one slot",
			ErrCapacity)
	}

	if uint64(l.MaxClients)*2 > uint64(l.VarOffset) {
		return fmt.Errorf(
			"%w: %d clients need %d string definitions, "+
				"which reach the variable offset %d",
			ErrCapacity, l.MaxClients, 2*uint64(l.MaxClients), l.VarOffset)
	}

	last := uint64(l.VarOffset) +
		uint64(l.MaxClients)*numVarKinds*uint64(l.SlotRange)
	if last > math.MaxUint32 {
		return fmt.Errorf(
			"%w: %d clients with %d slots per kind overflow the id space",
			ErrCapacity, l.MaxClients, l.SlotRange)
	}

	if uint64(l.MaxClients)*channelsPerClient > math.MaxUint32 {
		return fmt.Errorf("%w: too many clients for the channel id space",
			ErrCapacity)
	}

	return nil
}

// MustBeValid panics if the layout is not valid.
func (l Layout) MustBeValid() {
	if err := l.Validate(); err != nil {
		panic(err)
	}
}
