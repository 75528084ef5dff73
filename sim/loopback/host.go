package loopback

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mfbridge/mfbridge/sim"
)

// ErrInboxFull is returned when clients write faster than frames drain the
// inbox.
var ErrInboxFull = errors.New("host inbox is full")

type pending struct {
	mapped    bool
	requestID uint32
	eventID   uint32
	data      []byte
}

// A Host drives a bridge the way a simulator does. Client writes and
// triggered events wait in a bounded inbox. At every frame the host delivers
// them to the bridge before the frame itself, so a frame always sees the
// effect of every command sent before it.
type Host struct {
	name      string
	engine    *sim.SerialEngine
	frames    *sim.FrameSource
	transport *Transport
	namespace *Namespace

	lock   sync.Mutex
	inbox  sim.Buffer
	bridge sim.Handler
}

// Name returns the name of the host.
func (h *Host) Name() string {
	return h.name
}

// Engine returns the engine that delivers host events.
func (h *Host) Engine() *sim.SerialEngine {
	return h.engine
}

// Transport returns the shared memory of the host.
func (h *Host) Transport() *Transport {
	return h.transport
}

// Namespace returns the variable table of the host.
func (h *Host) Namespace() *Namespace {
	return h.namespace
}

// Frames returns the number of frames emitted so far.
func (h *Host) Frames() uint64 {
	return h.frames.Emitted()
}

// Attach sets the handler that receives host events.
func (h *Host) Attach(bridge sim.Handler) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.bridge = bridge
}

// Run emits frames until the frame limit is reached or Stop is called.
func (h *Host) Run() error {
	if err := h.mustBeAttached(); err != nil {
		return err
	}

	h.frames.Start()

	return h.engine.Run()
}

// RunFrames emits n more frames and returns when they are handled.
func (h *Host) RunFrames(n uint64) error {
	if err := h.mustBeAttached(); err != nil {
		return err
	}

	h.frames.Extend(n)

	return h.engine.Run()
}

func (h *Host) mustBeAttached() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.bridge == nil {
		return fmt.Errorf("host %s has no bridge attached", h.name)
	}

	return nil
}

// Stop lets Run return after the current frame.
func (h *Host) Stop() {
	h.frames.Stop()
}

// Trigger queues the mapped event with the given name.
func (h *Host) Trigger(name string) error {
	id, found := h.transport.EventID(name)
	if !found {
		return fmt.Errorf("event %s is not mapped", name)
	}

	return h.enqueue(pending{mapped: true, eventID: id})
}

// Handle delivers the inbox to the bridge and then forwards the frame.
func (h *Host) Handle(e sim.Event) error {
	frame, ok := e.(sim.FrameEvent)
	if !ok {
		return fmt.Errorf("host %s cannot handle %T", h.name, e)
	}

	h.lock.Lock()
	defer h.lock.Unlock()

	for h.inbox.Size() > 0 {
		p := h.inbox.Pop().(pending)
		h.engine.Schedule(h.eventOf(p, frame.Time()))
	}

	h.namespace.Step()
	h.engine.Schedule(frame.Forward(h.bridge))

	return nil
}

func (h *Host) eventOf(p pending, t sim.VTimeInSec) sim.Event {
	if p.mapped {
		return sim.MakeMappedEvent(h.bridge, t, p.eventID)
	}

	return sim.MakeClientDataEvent(h.bridge, t, p.requestID, p.data)
}

func (h *Host) enqueue(p pending) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if !h.inbox.CanPush() {
		return ErrInboxFull
	}

	h.inbox.Push(p)

	return nil
}

// Builder can build hosts.
type Builder struct {
	frameRate  sim.Freq
	frameLimit uint64
	inboxSize  int
	realTime   bool
	namespace  *Namespace
	hooks      []sim.Hook
}

// MakeBuilder returns a Builder for a 30 frames per second host.
func MakeBuilder() Builder {
	return Builder{
		frameRate: 30 * sim.Hz,
		inboxSize: 64,
	}
}

// WithFrameRate sets the number of frames per second.
func (b Builder) WithFrameRate(f sim.Freq) Builder {
	b.frameRate = f
	return b
}

// WithFrameLimit stops the host after the given number of frames. Zero runs
// until Stop is called.
func (b Builder) WithFrameLimit(n uint64) Builder {
	b.frameLimit = n
	return b
}

// WithInboxSize sets how many client writes may wait for the next frame.
func (b Builder) WithInboxSize(n int) Builder {
	b.inboxSize = n
	return b
}

// WithRealTime paces frames with the wall clock.
func (b Builder) WithRealTime() Builder {
	b.realTime = true
	return b
}

// WithNamespace sets the variable table. An empty one is used otherwise.
func (b Builder) WithNamespace(n *Namespace) Builder {
	b.namespace = n
	return b
}

// WithEngineHooks attaches hooks to the event engine.
func (b Builder) WithEngineHooks(hooks ...sim.Hook) Builder {
	b.hooks = append(append([]sim.Hook(nil), b.hooks...), hooks...)
	return b
}

// Build creates a host.
func (b Builder) Build(name string) *Host {
	sim.NameMustBeValid(name)

	h := &Host{
		name:      name,
		engine:    sim.NewSerialEngine(),
		transport: NewTransport(),
		namespace: b.namespace,
		inbox:     sim.NewBuffer(sim.BuildName(name, "Inbox"), b.inboxSize),
	}

	if h.namespace == nil {
		h.namespace = NewNamespace(Fixture{})
	}

	for _, hook := range b.hooks {
		h.engine.AcceptHook(hook)
	}

	h.frames = sim.NewFrameSource(h.engine, h, b.frameRate, b.frameLimit)
	if b.realTime {
		h.frames.WithRealTime()
	}

	h.transport.onClientWrite(func(requestID uint32, data []byte) error {
		return h.enqueue(pending{requestID: requestID, data: data})
	})

	return h
}
