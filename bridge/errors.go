package bridge

import (
	"errors"
	"fmt"

	"github.com/mfbridge/mfbridge/sim"
)

// ErrCapacity reports that an identifier range is exhausted.
var ErrCapacity = errors.New("capacity exceeded")

// ErrInvalidClientName reports a client name that cannot name channels.
var ErrInvalidClientName = errors.New("invalid client name")

// A TransportError describes a failed call into the host transport.
type TransportError struct {
	Op         string
	Client     string
	Channel    sim.ChannelID
	Definition sim.DefinitionID
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s on client %q (channel %d, definition %d): %v",
		e.Op, e.Client, e.Channel, e.Definition, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
