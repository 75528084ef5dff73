package bridge

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mfbridge/mfbridge/sim"
)

var _ = Describe("LogHook", func() {
	var (
		buf    *bytes.Buffer
		hook   *LogHook
		domain *Bridge
		client *Client
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		hook = NewLogHook(log.New(buf, "", 0), false)
		domain = &Bridge{name: "Bridge"}
		client = newClient(DefaultLayout(), 1, "B")
	})

	It("should log registrations", func() {
		hook.Func(sim.HookCtx{
			Domain: domain,
			Pos:    HookPosClientRegistered,
			Item:   client,
		})

		Expect(buf.String()).To(Equal(
			"MobiFlight[Bridge]: client B registered with id 1, " +
				"channels 4 5 6 7\n"))
	})

	It("should log transport errors", func() {
		hook.Func(sim.HookCtx{
			Domain: domain,
			Pos:    HookPosTransportError,
			Item: &TransportError{
				Op:      "write response",
				Client:  "B",
				Channel: 6,
				Err:     ErrCapacity,
			},
		})

		Expect(buf.String()).To(ContainSubstring(
			`write response on client "B" (channel 6, definition 0)`))
	})

	It("should only log drops when verbose", func() {
		drop := sim.HookCtx{
			Domain: domain,
			Pos:    HookPosCommandDropped,
			Item:   DropEvent{RequestID: 9, Text: "HELLO", Reason: "unknown client"},
		}

		hook.Func(drop)
		Expect(buf.Len()).To(Equal(0))

		hook.Verbose = true
		hook.Func(drop)
		Expect(buf.String()).To(ContainSubstring(`dropped "HELLO" from request 9`))
	})

	It("should ignore items it does not know", func() {
		hook.Func(sim.HookCtx{Domain: domain, Item: 42})

		Expect(buf.Len()).To(Equal(0))
	})
})
