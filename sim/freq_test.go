package sim

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Freq", func() {
	It("should get the frame period", func() {
		f := 60 * Hz

		Expect(float64(f.Period())).To(BeNumerically("~", 1.0/60, 1e-12))
		Expect(f.WallPeriod()).To(BeNumerically("~", 16666666*time.Nanosecond, time.Microsecond))
	})

	It("should panic on a zero frequency", func() {
		Expect(func() { Freq(0).Period() }).To(Panic())
	})

	It("should count cycles", func() {
		f := 30 * Hz

		Expect(f.Cycle(2)).To(Equal(uint64(60)))
	})

	It("should get this tick", func() {
		f := 1 * Hz

		Expect(float64(f.ThisTick(1))).To(BeNumerically("~", 1, 1e-12))
		Expect(float64(f.ThisTick(1.5))).To(BeNumerically("~", 2, 1e-12))
	})

	It("should get the next tick", func() {
		f := 1 * KHz

		Expect(float64(f.NextTick(16))).To(BeNumerically("~", 16.001, 1e-12))
		Expect(float64(f.NextTick(0.0315))).To(BeNumerically("~", 0.032, 1e-12))
	})
})
