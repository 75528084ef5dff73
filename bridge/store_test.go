package bridge

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/mfbridge/mfbridge/sim"
)

var _ = Describe("Variable store", func() {
	var (
		mockCtrl  *gomock.Controller
		transport *MockTransport
		namespace *MockNamespace
		recorder  *hookRecorder
		b         *Bridge
		c         *Client
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		transport = NewMockTransport(mockCtrl)
		namespace = NewMockNamespace(mockCtrl)
		recorder = &hookRecorder{}

		expectChannelSetup(transport, "MobiFlight", 0)

		b = MakeBuilder().
			WithTransport(transport).
			WithNamespace(namespace).
			WithHooks(recorder).
			Build("Bridge")
		c = b.DefaultClient()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	expectFloatAdd := func(slot uint32, offset int, expr string, v float64) {
		def := sim.DefinitionID(slot)

		gomock.InOrder(
			transport.EXPECT().DefineLayout(sim.ChannelID(0), def, offset, 4),
			transport.EXPECT().Write(sim.ChannelID(0), def, encodeFloat(0)),
			namespace.EXPECT().Evaluate(expr).Return(v),
			transport.EXPECT().
				Write(sim.ChannelID(0), def, encodeFloat(float32(v))),
		)
	}

	It("should place a float var and write its value", func() {
		expectFloatAdd(1000, 0, "(A:AIRSPEED INDICATED,knots)", 120.5)

		slot, err := b.AddFloat(c, "(A:AIRSPEED INDICATED,knots)")

		Expect(err).NotTo(HaveOccurred())
		Expect(slot).To(Equal(uint32(1000)))
		Expect(c.FloatVars).To(HaveLen(1))
		Expect(c.FloatVars[0].Value).To(Equal(float32(120.5)))
		Expect(c.MaxDefinedSlots()).To(Equal(uint32(1)))
		Expect(recorder.items(HookPosVarAdded)).To(HaveLen(1))
	})

	It("should give increasing slots and offsets", func() {
		expectFloatAdd(1000, 0, "(L:A)", 1)
		expectFloatAdd(1001, 4, "(L:B)", 2)
		expectFloatAdd(1002, 8, "(L:C)", 3)

		for i, expr := range []string{"(L:A)", "(L:B)", "(L:C)"} {
			slot, err := b.AddFloat(c, expr)
			Expect(err).NotTo(HaveOccurred())
			Expect(slot).To(Equal(uint32(1000 + i)))
			Expect(c.FloatVars[i].Offset).To(Equal(4 * i))
		}
	})

	It("should reuse the layout after a clear", func() {
		expectFloatAdd(1000, 0, "(L:A)", 1)
		expectFloatAdd(1001, 4, "(L:B)", 2)
		b.AddFloat(c, "(L:A)")
		b.AddFloat(c, "(L:B)")
		c.ReadCursor = 1

		b.Clear(c)

		Expect(c.FloatVars).To(BeEmpty())
		Expect(c.StringVars).To(BeEmpty())
		Expect(c.ReadCursor).To(Equal(uint32(0)))
		Expect(c.MaxDefinedSlots()).To(Equal(uint32(2)))
		Expect(recorder.items(HookPosVarsCleared)).To(HaveLen(1))

		transport.EXPECT().Write(sim.ChannelID(0), gomock.Any(), gomock.Any()).
			Times(4)
		namespace.EXPECT().Evaluate(gomock.Any()).Return(5.0).Times(2)

		b.AddFloat(c, "(L:C)")
		b.AddFloat(c, "(L:D)")

		Expect(c.FloatVars[1].SlotID).To(Equal(uint32(1001)))
		Expect(c.MaxDefinedSlots()).To(Equal(uint32(2)))
	})

	It("should place a string var in the string range", func() {
		def := sim.DefinitionID(11000)
		gomock.InOrder(
			transport.EXPECT().DefineLayout(sim.ChannelID(3), def, 0, 128),
			transport.EXPECT().
				Write(sim.ChannelID(3), def, encodeText("", 128)),
			namespace.EXPECT().
				EvaluateString("(A:ATC ID,string)", 128).Return("D-EMFB"),
			transport.EXPECT().
				Write(sim.ChannelID(3), def, encodeText("D-EMFB", 128)),
		)

		slot, err := b.AddString(c, "(A:ATC ID,string)")

		Expect(err).NotTo(HaveOccurred())
		Expect(slot).To(Equal(uint32(11000)))
		Expect(c.StringVars[0].Value).To(Equal("D-EMFB"))
	})

	It("should cut long strings to the slot width", func() {
		transport.EXPECT().DefineLayout(gomock.Any(), gomock.Any(), 0, 128)
		transport.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).
			Times(2)
		namespace.EXPECT().EvaluateString("(L:Long)", 128).
			Return(strings.Repeat("x", 128))

		b.AddString(c, "(L:Long)")

		Expect(c.StringVars[0].Value).To(HaveLen(127))
	})

	It("should refuse vars beyond the capacity", func() {
		c.FloatVars = make([]*FloatVar, b.Layout().Capacity(FloatKind))

		_, err := b.AddFloat(c, "(L:A)")

		Expect(err).To(MatchError(ErrCapacity))
	})

	It("should keep tracking a var whose layout was refused", func() {
		transport.EXPECT().DefineLayout(sim.ChannelID(0), gomock.Any(), 0, 4).
			Return(errors.New("refused"))
		transport.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("refused")).Times(2)
		namespace.EXPECT().Evaluate("(L:A)").Return(1.0)

		_, err := b.AddFloat(c, "(L:A)")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.FloatVars).To(HaveLen(1))
		Expect(recorder.items(HookPosTransportError)).To(HaveLen(3))
	})

	It("should list names in lexicographic order", func() {
		namespace.EXPECT().EnumerateNames(DefaultMaxNameScan).
			Return([]string{"XMLVAR_Baro", "A32NX_X", "Zulu", "B747_Y"})

		Expect(b.ReadAllNames()).To(Equal(
			[]string{"A32NX_X", "B747_Y", "XMLVAR_Baro", "Zulu"}))
	})

	Context("when polled", func() {
		BeforeEach(func() {
			expectFloatAdd(1000, 0, "(L:A)", 1)
			b.AddFloat(c, "(L:A)")
		})

		It("should not write a value that did not change", func() {
			namespace.EXPECT().Evaluate("(L:A)").Return(1.0)

			b.Handle(sim.MakeFrameEvent(b, 0))

			Expect(c.FloatVars[0].Value).To(Equal(float32(1)))
		})

		It("should write a changed value once", func() {
			namespace.EXPECT().Evaluate("(L:A)").Return(2.0).Times(2)
			transport.EXPECT().
				Write(sim.ChannelID(0), sim.DefinitionID(1000), encodeFloat(2))

			b.Handle(sim.MakeFrameEvent(b, 0))
			b.Handle(sim.MakeFrameEvent(b, 1))

			Expect(c.FloatVars[0].Value).To(Equal(float32(2)))
			Expect(b.Frames()).To(Equal(uint64(2)))

			reports := recorder.items(HookPosFramePolled)
			Expect(reports).To(Equal([]any{
				FrameReport{Frame: 1, Evaluations: 1, Writes: 1},
				FrameReport{Frame: 2, Evaluations: 1, Writes: 0},
			}))
		})

		It("should not write a string that did not change", func() {
			transport.EXPECT().DefineLayout(sim.ChannelID(3), gomock.Any(), 0, 128)
			transport.EXPECT().Write(sim.ChannelID(3), gomock.Any(), gomock.Any()).
				Times(2)
			namespace.EXPECT().EvaluateString("(L:S)", 128).Return("abc").Times(2)
			namespace.EXPECT().Evaluate("(L:A)").Return(1.0)
			b.AddString(c, "(L:S)")

			b.Handle(sim.MakeFrameEvent(b, 0))

			Expect(c.StringVars[0].Value).To(Equal("abc"))
		})
	})
})
