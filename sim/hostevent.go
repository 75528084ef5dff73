package sim

// FrameEvent is delivered once per host simulation frame. It carries no
// payload beyond the fact that a frame occurred.
type FrameEvent struct {
	EventBase
}

// MakeFrameEvent creates a new FrameEvent.
func MakeFrameEvent(handler Handler, time VTimeInSec) FrameEvent {
	evt := FrameEvent{}
	evt.ID = GetIDGenerator().Generate()
	evt.handler = handler
	evt.time = time

	return evt
}

// Forward returns a copy of the frame addressed to another handler. The copy
// happens at the same time and stays a secondary event.
func (e FrameEvent) Forward(handler Handler) FrameEvent {
	evt := MakeFrameEvent(handler, e.time)
	evt.secondary = e.secondary

	return evt
}

// ClientDataEvent carries one inbound write made by an external client to a
// subscribed channel. RequestID is the identifier given to SubscribeChanges.
type ClientDataEvent struct {
	EventBase

	RequestID uint32
	Data      []byte
}

// MakeClientDataEvent creates a new ClientDataEvent. The data is copied.
func MakeClientDataEvent(
	handler Handler,
	time VTimeInSec,
	requestID uint32,
	data []byte,
) ClientDataEvent {
	evt := ClientDataEvent{
		RequestID: requestID,
		Data:      append([]byte(nil), data...),
	}
	evt.ID = GetIDGenerator().Generate()
	evt.handler = handler
	evt.time = time

	return evt
}

// MappedEvent is delivered when the host triggers a client event that was
// previously mapped with EventMapper.MapEvent.
type MappedEvent struct {
	EventBase

	EventID uint32
}

// MakeMappedEvent creates a new MappedEvent.
func MakeMappedEvent(
	handler Handler,
	time VTimeInSec,
	eventID uint32,
) MappedEvent {
	evt := MappedEvent{EventID: eventID}
	evt.ID = GetIDGenerator().Generate()
	evt.handler = handler
	evt.time = time

	return evt
}
