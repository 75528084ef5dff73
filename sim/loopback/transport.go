package loopback

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mfbridge/mfbridge/sim"
)

// Errors returned by the Transport.
var (
	ErrUnknownChannel    = errors.New("unknown channel")
	ErrUnknownDefinition = errors.New("unknown definition")
	ErrOutOfRange        = errors.New("range outside of the channel")
	ErrNameTaken         = errors.New("channel name or id already taken")
	ErrRefused           = errors.New("refused by host")
)

const historyLength = 256

type area struct {
	name    string
	data    []byte
	history [][]byte
}

type definitionKey struct {
	channel    sim.ChannelID
	definition sim.DefinitionID
}

type span struct {
	offset, length int
}

// A Transport keeps shared data areas in memory. It implements
// sim.Transport and sim.EventMapper.
type Transport struct {
	lock sync.Mutex

	areas         map[sim.ChannelID]*area
	byName        map[string]sim.ChannelID
	definitions   map[definitionKey]span
	subscriptions map[definitionKey]uint32
	events        map[string]uint32
	refused       map[string]bool
	writes        uint64

	notify func(requestID uint32, data []byte) error
}

// NewTransport creates an empty transport.
func NewTransport() *Transport {
	return &Transport{
		areas:         make(map[sim.ChannelID]*area),
		byName:        make(map[string]sim.ChannelID),
		definitions:   make(map[definitionKey]span),
		subscriptions: make(map[definitionKey]uint32),
		events:        make(map[string]uint32),
		refused:       make(map[string]bool),
	}
}

// Refuse makes the creation of the named channel fail until Accept is called.
func (t *Transport) Refuse(name string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.refused[name] = true
}

// Accept undoes Refuse.
func (t *Transport) Accept(name string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	delete(t.refused, name)
}

// CreateChannel maps the name to the id and allocates the area. Creating the
// same channel again is a no-op.
func (t *Transport) CreateChannel(name string, id sim.ChannelID, size int) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.refused[name] {
		return fmt.Errorf("%w: channel %s", ErrRefused, name)
	}

	if existing, found := t.byName[name]; found {
		if existing != id {
			return fmt.Errorf("%w: %s is %d", ErrNameTaken, name, existing)
		}

		return nil
	}

	if a, found := t.areas[id]; found {
		return fmt.Errorf("%w: %d is %s", ErrNameTaken, id, a.name)
	}

	t.areas[id] = &area{name: name, data: make([]byte, size)}
	t.byName[name] = id

	return nil
}

// DefineLayout registers a byte range of a channel.
func (t *Transport) DefineLayout(
	channel sim.ChannelID,
	definition sim.DefinitionID,
	offset, length int,
) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	a, found := t.areas[channel]
	if !found {
		return fmt.Errorf("%w: %d", ErrUnknownChannel, channel)
	}

	if offset < 0 || length <= 0 || offset+length > len(a.data) {
		return fmt.Errorf("%w: [%d, %d) of %s",
			ErrOutOfRange, offset, offset+length, a.name)
	}

	t.definitions[definitionKey{channel, definition}] = span{offset, length}

	return nil
}

// Write copies data into the range of the definition.
func (t *Transport) Write(
	channel sim.ChannelID,
	definition sim.DefinitionID,
	data []byte,
) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	a, s, err := t.resolve(channel, definition)
	if err != nil {
		return err
	}

	if len(data) > s.length {
		return fmt.Errorf("%w: %d bytes into %d", ErrOutOfRange,
			len(data), s.length)
	}

	copy(a.data[s.offset:s.offset+s.length], data)
	a.history = append(a.history, append([]byte(nil), data...))
	if len(a.history) > historyLength {
		a.history = a.history[len(a.history)-historyLength:]
	}

	t.writes++

	return nil
}

// SubscribeChanges asks for client writes to the definition to be reported
// with the request id.
func (t *Transport) SubscribeChanges(
	channel sim.ChannelID,
	definition sim.DefinitionID,
	requestID uint32,
) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if _, _, err := t.resolve(channel, definition); err != nil {
		return err
	}

	t.subscriptions[definitionKey{channel, definition}] = requestID

	return nil
}

// MapEvent exposes a named client event.
func (t *Transport) MapEvent(eventID uint32, name string) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.events[name] = eventID

	return nil
}

// EventID returns the id of a mapped event.
func (t *Transport) EventID(name string) (uint32, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	id, found := t.events[name]

	return id, found
}

// Writes returns the number of successful writes made by the bridge.
func (t *Transport) Writes() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.writes
}

// NumChannels returns the number of channels created.
func (t *Transport) NumChannels() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.areas)
}

// ClientWrite copies data into the named channel as an external client
// would, and reports the write to every subscriber of the channel.
func (t *Transport) ClientWrite(name string, data []byte) error {
	t.lock.Lock()

	id, found := t.byName[name]
	if !found {
		t.lock.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownChannel, name)
	}

	a := t.areas[id]
	if len(data) > len(a.data) {
		t.lock.Unlock()
		return fmt.Errorf("%w: %d bytes into %s", ErrOutOfRange, len(data), name)
	}

	copy(a.data, data)

	type delivery struct {
		requestID uint32
		data      []byte
	}

	var deliveries []delivery
	for key, requestID := range t.subscriptions {
		if key.channel != id {
			continue
		}

		s := t.definitions[key]
		deliveries = append(deliveries, delivery{
			requestID: requestID,
			data:      append([]byte(nil), a.data[s.offset:s.offset+s.length]...),
		})
	}

	notify := t.notify
	t.lock.Unlock()

	if notify == nil {
		return nil
	}

	for _, d := range deliveries {
		if err := notify(d.requestID, d.data); err != nil {
			return err
		}
	}

	return nil
}

// Read returns a copy of a byte range of the named channel.
func (t *Transport) Read(name string, offset, length int) ([]byte, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	id, found := t.byName[name]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, name)
	}

	a := t.areas[id]
	if offset < 0 || length < 0 || offset+length > len(a.data) {
		return nil, fmt.Errorf("%w: [%d, %d) of %s",
			ErrOutOfRange, offset, offset+length, name)
	}

	return append([]byte(nil), a.data[offset:offset+length]...), nil
}

// History returns the most recent writes made to the named channel, oldest
// first.
func (t *Transport) History(name string) [][]byte {
	t.lock.Lock()
	defer t.lock.Unlock()

	id, found := t.byName[name]
	if !found {
		return nil
	}

	return append([][]byte(nil), t.areas[id].history...)
}

func (t *Transport) onClientWrite(notify func(uint32, []byte) error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.notify = notify
}

func (t *Transport) resolve(
	channel sim.ChannelID,
	definition sim.DefinitionID,
) (*area, span, error) {
	a, found := t.areas[channel]
	if !found {
		return nil, span{}, fmt.Errorf("%w: %d", ErrUnknownChannel, channel)
	}

	s, found := t.definitions[definitionKey{channel, definition}]
	if !found {
		return nil, span{}, fmt.Errorf("%w: %d in %s",
			ErrUnknownDefinition, definition, a.name)
	}

	return a, s, nil
}
