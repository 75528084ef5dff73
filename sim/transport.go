package sim

// ChannelID identifies a shared data area ("client data" in host terms).
type ChannelID uint32

// DefinitionID identifies a registered byte range inside a channel.
type DefinitionID uint32

// Transport is the host's shared memory facility. The bridge decides every
// identifier itself; the transport only maps names to ids and moves bytes.
type Transport interface {
	// CreateChannel maps the name to id and allocates size bytes for it.
	CreateChannel(name string, id ChannelID, size int) error

	// DefineLayout registers the byte range [offset, offset+length) of the
	// channel under the given definition.
	DefineLayout(
		channel ChannelID,
		definition DefinitionID,
		offset, length int,
	) error

	// Write copies data into the range registered for the definition.
	Write(channel ChannelID, definition DefinitionID, data []byte) error

	// SubscribeChanges asks the host to deliver every external write to the
	// definition as a ClientDataEvent tagged with requestID.
	SubscribeChanges(
		channel ChannelID,
		definition DefinitionID,
		requestID uint32,
	) error
}

// EventMapper is implemented by transports that can expose named client
// events. A mapped event is delivered back as a MappedEvent.
type EventMapper interface {
	MapEvent(eventID uint32, name string) error
}
