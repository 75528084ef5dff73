package bridge

import (
	"log"

	"github.com/mfbridge/mfbridge/sim"
)

// LogHook writes bridge activity into a logger. Dropped commands, variable
// writes and frame reports are only written in verbose mode.
type LogHook struct {
	sim.LogHookBase

	Verbose bool
}

// NewLogHook returns a new LogHook which will write into the logger.
func NewLogHook(logger *log.Logger, verbose bool) *LogHook {
	h := new(LogHook)
	h.Logger = logger
	h.Verbose = verbose

	return h
}

// Func writes the hook information into the logger.
func (h *LogHook) Func(ctx sim.HookCtx) {
	name := "?"
	if named, ok := ctx.Domain.(sim.Named); ok {
		name = named.Name()
	}

	switch item := ctx.Item.(type) {
	case *Client:
		h.logClient(name, ctx.Pos, item)
	case *TransportError:
		h.Printf("MobiFlight[%s]: %v", name, item)
	case VarEvent:
		h.logVar(name, ctx.Pos, item)
	case CommandEvent:
		h.Printf("MobiFlight[%s]: received command %q", item.Client.Name, item.Text)
	case DropEvent:
		if h.Verbose {
			h.Printf("MobiFlight[%s]: dropped %q from request %d: %s",
				name, item.Text, item.RequestID, item.Reason)
		}
	case ResponseEvent:
		if h.Verbose {
			h.Printf("MobiFlight[%s]: sent response %q", item.Client.Name, item.Text)
		}
	case ConfigEvent:
		h.Printf("MobiFlight[%s]: set %s to %d", name, item.Key, item.Value)
	case MappedEventRecord:
		h.Printf("MobiFlight[%s]: event %d %s executes %q",
			name, item.EventID, item.Name, item.Code)
	case FrameReport:
		if h.Verbose && item.Evaluations > 0 {
			h.Printf("MobiFlight[%s]: frame %d, %d evaluations, %d writes",
				name, item.Frame, item.Evaluations, item.Writes)
		}
	}
}

func (h *LogHook) logClient(name string, pos *sim.HookPos, c *Client) {
	switch pos {
	case HookPosClientRegistered:
		h.Printf("MobiFlight[%s]: client %s registered with id %d, "+
			"channels %d %d %d %d",
			name, c.Name, c.ID,
			c.Channels.Data, c.Channels.Command,
			c.Channels.Response, c.Channels.StringData)
	case HookPosVarsCleared:
		h.Printf("MobiFlight[%s]: cleared vars of client %s", name, c.Name)
	}
}

func (h *LogHook) logVar(name string, pos *sim.HookPos, e VarEvent) {
	switch pos {
	case HookPosVarAdded:
		h.Printf("MobiFlight[%s]: client %s added %s var %d %q",
			name, e.Client.Name, e.Kind, e.SlotID, e.Expression)
	case HookPosVarWritten:
		if !h.Verbose {
			return
		}

		if e.Kind == StringKind {
			h.Printf("MobiFlight[%s]: client %s var %d = %q",
				name, e.Client.Name, e.SlotID, e.StringValue)
		} else {
			h.Printf("MobiFlight[%s]: client %s var %d = %f",
				name, e.Client.Name, e.SlotID, e.FloatValue)
		}
	}
}
