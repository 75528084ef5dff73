package bridge

import "github.com/mfbridge/mfbridge/sim"

// Hook positions raised by the bridge. The Item of each position is listed
// next to it.
var (
	// HookPosClientRegistered carries a *Client.
	HookPosClientRegistered = &sim.HookPos{Name: "Client Registered"}

	// HookPosVarAdded carries a VarEvent.
	HookPosVarAdded = &sim.HookPos{Name: "Var Added"}

	// HookPosVarsCleared carries the *Client.
	HookPosVarsCleared = &sim.HookPos{Name: "Vars Cleared"}

	// HookPosVarWritten carries a VarEvent.
	HookPosVarWritten = &sim.HookPos{Name: "Var Written"}

	// HookPosCommand carries a CommandEvent.
	HookPosCommand = &sim.HookPos{Name: "Command"}

	// HookPosCommandDropped carries a DropEvent.
	HookPosCommandDropped = &sim.HookPos{Name: "Command Dropped"}

	// HookPosResponse carries a ResponseEvent.
	HookPosResponse = &sim.HookPos{Name: "Response"}

	// HookPosTransportError carries a *TransportError.
	HookPosTransportError = &sim.HookPos{Name: "Transport Error"}

	// HookPosConfigChanged carries a ConfigEvent.
	HookPosConfigChanged = &sim.HookPos{Name: "Config Changed"}

	// HookPosMappedEvent carries a MappedEventRecord.
	HookPosMappedEvent = &sim.HookPos{Name: "Mapped Event"}

	// HookPosFramePolled carries a FrameReport.
	HookPosFramePolled = &sim.HookPos{Name: "Frame Polled"}
)

// VarEvent describes a tracked variable being added or written.
type VarEvent struct {
	Client      *Client
	Kind        VarKind
	SlotID      uint32
	Expression  string
	FloatValue  float32
	StringValue string
}

// CommandEvent describes a command that matched a rule.
type CommandEvent struct {
	Client *Client
	Rule   string
	Text   string
	Arg    string
}

// DropEvent describes an inbound message that was not processed.
type DropEvent struct {
	RequestID uint32
	Client    *Client
	Text      string
	Reason    string
}

// ResponseEvent describes a response written to a client.
type ResponseEvent struct {
	Client *Client
	Text   string
}

// ConfigEvent describes a runtime configuration change.
type ConfigEvent struct {
	Client *Client
	Key    string
	Value  int
}

// MappedEventRecord describes a static event being executed.
type MappedEventRecord struct {
	EventID uint32
	Name    string
	Code    string
}

// FrameReport summarizes one frame.
type FrameReport struct {
	Frame       uint64
	Evaluations int
	Writes      int
}
