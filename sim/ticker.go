package sim

import (
	"sync"
	"time"
)

// frameTickEvent drives a FrameSource. It never leaves the source.
type frameTickEvent struct {
	EventBase
}

// A FrameSource emits one FrameEvent per host frame to its target. Frame
// events are secondary events, so every client data event delivered at the
// same time is handled before the frame.
type FrameSource struct {
	lock     sync.Mutex
	engine   Engine
	target   Handler
	freq     Freq
	limit    uint64
	emitted  uint64
	stopped  bool
	realTime bool
	started  bool
	ticking  bool
}

// NewFrameSource creates a frame source that delivers frames to target at
// the given frame rate. A limit of 0 emits frames until Stop is called.
func NewFrameSource(
	engine Engine,
	target Handler,
	freq Freq,
	limit uint64,
) *FrameSource {
	return &FrameSource{
		engine: engine,
		target: target,
		freq:   freq,
		limit:  limit,
	}
}

// WithRealTime makes the source wait one wall clock period between frames.
func (s *FrameSource) WithRealTime() *FrameSource {
	s.realTime = true
	return s
}

// Start schedules the first frame at the current engine time.
func (s *FrameSource) Start() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.started {
		return
	}

	s.started = true
	s.ticking = true
	s.scheduleTick(s.freq.ThisTick(s.engine.CurrentTime()))
}

// Extend allows n more frames and resumes a source that reached its limit
// or was stopped.
func (s *FrameSource) Extend(n uint64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.limit = s.emitted + n
	s.stopped = false

	if s.ticking || n == 0 {
		return
	}

	now := s.engine.CurrentTime()
	next := s.freq.ThisTick(now)
	if s.started {
		next = s.freq.NextTick(now)
	}

	s.started = true
	s.ticking = true
	s.scheduleTick(next)
}

// Stop prevents any further frame from being scheduled.
func (s *FrameSource) Stop() {
	s.lock.Lock()
	s.stopped = true
	s.lock.Unlock()
}

// Emitted returns the number of frames delivered so far.
func (s *FrameSource) Emitted() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.emitted
}

// Handle emits a frame and schedules the next one.
func (s *FrameSource) Handle(e Event) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		s.ticking = false
		return nil
	}

	frame := MakeFrameEvent(s.target, e.Time())
	frame.secondary = true
	s.engine.Schedule(frame)
	s.emitted++

	if s.limit > 0 && s.emitted >= s.limit {
		s.ticking = false
		return nil
	}

	if s.realTime {
		time.Sleep(s.freq.WallPeriod())
	}

	s.scheduleTick(s.freq.NextTick(e.Time()))

	return nil
}

func (s *FrameSource) scheduleTick(t VTimeInSec) {
	tick := frameTickEvent{}
	tick.ID = GetIDGenerator().Generate()
	tick.handler = s
	tick.time = t
	s.engine.Schedule(tick)
}
