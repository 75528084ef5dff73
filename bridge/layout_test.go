package bridge

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mfbridge/mfbridge/sim"
)

var _ = Describe("Layout", func() {
	var l Layout

	BeforeEach(func() {
		l = DefaultLayout()
	})

	It("should be valid by default", func() {
		Expect(l.Validate()).To(Succeed())
	})

	It("should place the string range right after the float range", func() {
		Expect(l.FloatBase(0)).To(Equal(uint32(1000)))
		Expect(l.StringBase(0)).To(Equal(uint32(11000)))
		Expect(l.FloatBase(1)).To(Equal(uint32(21000)))
		Expect(l.Base(2, StringKind)).To(Equal(uint32(51000)))
	})

	It("should never let two ranges overlap", func() {
		type span struct{ lo, hi uint64 }

		var spans []span
		for id := uint32(0); id < l.MaxClients; id++ {
			for _, kind := range []VarKind{FloatKind, StringKind} {
				lo := uint64(l.Base(id, kind))
				spans = append(spans, span{lo, lo + uint64(l.SlotRange)})
			}
		}

		for i := range spans {
			for j := range spans {
				if i == j {
					continue
				}

				overlap := spans[i].lo < spans[j].hi &&
					spans[j].lo < spans[i].hi
				Expect(overlap).To(BeFalse(),
					"span %d overlaps span %d", i, j)
			}
		}
	})

	It("should never reuse a float base as a string base", func() {
		for a := uint32(0); a < l.MaxClients; a++ {
			for b := uint32(0); b < l.MaxClients; b++ {
				Expect(l.FloatBase(a)).NotTo(Equal(l.StringBase(b)))
			}
		}
	})

	It("should give every client its own channels", func() {
		seen := map[sim.ChannelID]uint32{}

		for id := uint32(0); id < l.MaxClients; id++ {
			ch := l.Channels(id)
			for _, c := range []sim.ChannelID{
				ch.Data, ch.Command, ch.Response, ch.StringData,
			} {
				Expect(seen).NotTo(HaveKey(c))
				seen[c] = id
			}
		}

		Expect(l.Channels(1)).To(Equal(ChannelSet{
			Data: 4, Command: 5, Response: 6, StringData: 7,
		}))
	})

	It("should keep message definitions below the variable slots", func() {
		last := l.MaxClients - 1

		Expect(l.ResponseDefinition(3)).To(Equal(sim.DefinitionID(6)))
		Expect(l.CommandDefinition(3)).To(Equal(sim.DefinitionID(7)))
		Expect(uint32(l.CommandDefinition(last))).
			To(BeNumerically("<", l.FloatBase(0)))
	})

	It("should bound the capacity by the area size", func() {
		Expect(l.Capacity(FloatKind)).To(Equal(1024))
		Expect(l.Capacity(StringKind)).To(Equal(64))

		l.SlotRange = 10
		Expect(l.Capacity(FloatKind)).To(Equal(10))
	})

	It("should reject a zero slot range", func() {
		l.SlotRange = 0
		Expect(l.Validate()).To(MatchError(ErrCapacity))
	})

	It("should reject definitions reaching the variable offset", func() {
		l.MaxClients = 600
		Expect(l.Validate()).To(MatchError(ErrCapacity))
	})

	It("should reject a layout that overflows the id space", func() {
		l.SlotRange = math.MaxUint32 / 4
		Expect(l.Validate()).To(MatchError(ErrCapacity))
	})

	It("should panic on an invalid layout", func() {
		l.MaxClients = 0
		Expect(func() { l.MustBeValid() }).To(Panic())
	})
})
