package bridge

import (
	"math"

	"github.com/mfbridge/mfbridge/sim"
)

func expectChannelSetup(t *MockTransport, name string, id uint32) {
	l := DefaultLayout()
	ch := l.Channels(id)

	t.EXPECT().CreateChannel(name+".LVars", ch.Data, l.FloatAreaSize)
	t.EXPECT().CreateChannel(name+".Command", ch.Command, l.MessageSize)
	t.EXPECT().CreateChannel(name+".Response", ch.Response, l.MessageSize)
	t.EXPECT().
		CreateChannel(name+".StringVars", ch.StringData, l.StringAreaSize)
	t.EXPECT().
		DefineLayout(ch.Response, l.ResponseDefinition(id), 0, l.MessageSize)
	t.EXPECT().
		DefineLayout(ch.Command, l.CommandDefinition(id), 0, l.MessageSize)
	t.EXPECT().SubscribeChanges(ch.Command, l.CommandDefinition(id), id)
}

type hookRecorder struct {
	ctxs []sim.HookCtx
}

func (r *hookRecorder) Func(ctx sim.HookCtx) {
	r.ctxs = append(r.ctxs, ctx)
}

func (r *hookRecorder) items(pos *sim.HookPos) []any {
	var items []any

	for _, ctx := range r.ctxs {
		if ctx.Pos == pos {
			items = append(items, ctx.Item)
		}
	}

	return items
}

func float32FromBits(b uint32) float32 {
	return math.Float32frombits(b)
}
