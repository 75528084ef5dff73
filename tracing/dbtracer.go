package tracing

import (
	"strconv"
	"sync"

	"github.com/mfbridge/mfbridge/bridge"
	"github.com/mfbridge/mfbridge/datarecording"
	"github.com/mfbridge/mfbridge/sim"
)

// Table names used by the DBTracer.
const (
	RegistrationTable   = "registrations"
	CommandTable        = "commands"
	ResponseTable       = "responses"
	DropTable           = "drops"
	VarTable            = "vars"
	TransportErrorTable = "transport_errors"
	ConfigTable         = "config_changes"
	MappedEventTable    = "mapped_events"
	FrameTable          = "frames"
)

// Tables returns a sample entry of every table written by a DBTracer, keyed
// by table name.
func Tables() map[string]any {
	return map[string]any{
		RegistrationTable:   RegistrationEntry{},
		CommandTable:        CommandEntry{},
		ResponseTable:       ResponseEntry{},
		DropTable:           DropEntry{},
		VarTable:            VarEntry{},
		TransportErrorTable: TransportErrorEntry{},
		ConfigTable:         ConfigEntry{},
		MappedEventTable:    MappedEventEntry{},
		FrameTable:          FrameEntry{},
	}
}

// RegistrationEntry records a client registration.
type RegistrationEntry struct {
	Time     float64
	ClientID uint32
	Client   string
	Degraded bool
	Err      string
}

// CommandEntry records a command that matched a rule.
type CommandEntry struct {
	Time   float64
	Client string
	Rule   string
	Text   string
}

// ResponseEntry records a response written to a client.
type ResponseEntry struct {
	Time   float64
	Client string
	Text   string
}

// DropEntry records an inbound message that was not processed.
type DropEntry struct {
	Time      float64
	RequestID uint32
	Client    string
	Text      string
	Reason    string
}

// VarEntry records a tracked variable being added, written or cleared.
type VarEntry struct {
	Time       float64
	Action     string
	Client     string
	Kind       string
	SlotID     uint32
	Expression string
	Value      string
}

// TransportErrorEntry records a failed transport call.
type TransportErrorEntry struct {
	Time       float64
	Op         string
	Client     string
	Channel    uint32
	Definition uint32
	Err        string
}

// ConfigEntry records a runtime configuration change.
type ConfigEntry struct {
	Time   float64
	Client string
	Key    string
	Value  int
}

// MappedEventEntry records a static event being executed.
type MappedEventEntry struct {
	Time    float64
	EventID uint32
	Name    string
	Code    string
}

// FrameEntry records the work done in one frame.
type FrameEntry struct {
	Time        float64
	Frame       uint64
	Evaluations int
	Writes      int
}

// DBTracer is a hook that stores bridge activity into a DataRecorder. Every
// kind of activity goes to its own table.
type DBTracer struct {
	lock       sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder

	startTime, endTime sim.VTimeInSec

	recordWrites bool
	recordFrames bool
}

// NewDBTracer creates a new DBTracer and the tables it writes to.
func NewDBTracer(
	timeTeller sim.TimeTeller,
	dataRecorder datarecording.DataRecorder,
) *DBTracer {
	if timeTeller == nil {
		panic("DBTracer requires a time teller")
	}

	for name, sample := range Tables() {
		dataRecorder.CreateTable(name, sample)
	}

	return &DBTracer{
		timeTeller:   timeTeller,
		backend:      dataRecorder,
		recordWrites: true,
	}
}

// SetTimeRange limits recording to the given time range. A zero bound is
// open.
func (t *DBTracer) SetTimeRange(startTime, endTime sim.VTimeInSec) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.startTime = startTime
	t.endTime = endTime
}

// RecordWrites selects whether variable writes are recorded. Adds and clears
// are always recorded.
func (t *DBTracer) RecordWrites(enabled bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.recordWrites = enabled
}

// RecordFrames selects whether a summary of every frame is recorded.
func (t *DBTracer) RecordFrames(enabled bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.recordFrames = enabled
}

// Terminate flushes everything recorded so far.
func (t *DBTracer) Terminate() error {
	return t.backend.Flush()
}

// Func records the hook item into the matching table.
func (t *DBTracer) Func(ctx sim.HookCtx) {
	t.lock.Lock()
	defer t.lock.Unlock()

	now := t.timeTeller.CurrentTime()
	if !t.inRange(now) {
		return
	}

	table, entry := t.entry(float64(now), ctx)
	if entry == nil {
		return
	}

	t.backend.InsertData(table, entry)
}

func (t *DBTracer) inRange(now sim.VTimeInSec) bool {
	if t.startTime > 0 && now < t.startTime {
		return false
	}

	if t.endTime > 0 && now > t.endTime {
		return false
	}

	return true
}

//nolint:gocyclo
func (t *DBTracer) entry(now float64, ctx sim.HookCtx) (string, any) {
	switch ctx.Pos {
	case bridge.HookPosClientRegistered:
		c := ctx.Item.(*bridge.Client)
		return RegistrationTable, RegistrationEntry{
			now, c.ID, c.Name, c.Degraded, errString(c.LastErr),
		}
	case bridge.HookPosCommand:
		e := ctx.Item.(bridge.CommandEvent)
		return CommandTable, CommandEntry{now, clientName(e.Client), e.Rule, e.Text}
	case bridge.HookPosResponse:
		e := ctx.Item.(bridge.ResponseEvent)
		return ResponseTable, ResponseEntry{now, clientName(e.Client), e.Text}
	case bridge.HookPosCommandDropped:
		e := ctx.Item.(bridge.DropEvent)
		return DropTable, DropEntry{
			now, e.RequestID, clientName(e.Client), e.Text, e.Reason,
		}
	case bridge.HookPosVarAdded:
		return VarTable, varEntry(now, "add", ctx.Item.(bridge.VarEvent))
	case bridge.HookPosVarWritten:
		if !t.recordWrites {
			return "", nil
		}

		return VarTable, varEntry(now, "write", ctx.Item.(bridge.VarEvent))
	case bridge.HookPosVarsCleared:
		c := ctx.Item.(*bridge.Client)
		return VarTable, VarEntry{Time: now, Action: "clear", Client: c.Name}
	case bridge.HookPosTransportError:
		e := ctx.Item.(*bridge.TransportError)
		return TransportErrorTable, TransportErrorEntry{
			now, e.Op, e.Client,
			uint32(e.Channel), uint32(e.Definition), errString(e.Err),
		}
	case bridge.HookPosConfigChanged:
		e := ctx.Item.(bridge.ConfigEvent)
		return ConfigTable, ConfigEntry{now, clientName(e.Client), e.Key, e.Value}
	case bridge.HookPosMappedEvent:
		e := ctx.Item.(bridge.MappedEventRecord)
		return MappedEventTable, MappedEventEntry{now, e.EventID, e.Name, e.Code}
	case bridge.HookPosFramePolled:
		if !t.recordFrames {
			return "", nil
		}

		e := ctx.Item.(bridge.FrameReport)
		return FrameTable, FrameEntry{now, e.Frame, e.Evaluations, e.Writes}
	}

	return "", nil
}

func varEntry(now float64, action string, e bridge.VarEvent) VarEntry {
	entry := VarEntry{
		Time:       now,
		Action:     action,
		Client:     clientName(e.Client),
		Kind:       e.Kind.String(),
		SlotID:     e.SlotID,
		Expression: e.Expression,
	}

	if e.Kind == bridge.StringKind {
		entry.Value = e.StringValue
	} else {
		entry.Value = formatFloat(e.FloatValue)
	}

	return entry
}

func clientName(c *bridge.Client) string {
	if c == nil {
		return ""
	}

	return c.Name
}

func errString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
