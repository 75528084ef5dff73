package monitoring

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/mfbridge/mfbridge/bridge"
	"github.com/mfbridge/mfbridge/sim"
)

type bufferOwner struct {
	name  string
	inbox sim.Buffer
	Queue sim.Buffer
	unset sim.Buffer
}

type staticCounter map[string]uint64

func (c staticCounter) Snapshot() map[string]uint64 {
	return c
}

func fill(b sim.Buffer, n int) sim.Buffer {
	for i := 0; i < n; i++ {
		b.Push(i)
	}

	return b
}

var _ = Describe("Monitor", func() {
	var (
		mockCtrl *gomock.Controller
		b        *MockBridge
		m        *Monitor
		router   http.Handler
		snapshot bridge.ClientSnapshot
	)

	serve := func(method, url, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, url, strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		b = NewMockBridge(mockCtrl)

		snapshot = bridge.ClientSnapshot{
			ID:         1,
			Name:       "B",
			FloatBase:  21000,
			StringBase: 31000,
			FloatVars: []bridge.FloatVar{
				{SlotID: 21000, Expression: "(A:AIRSPEED,knots)", Value: 250},
			},
			StringVars: []bridge.StringVar{},
		}

		m = NewMonitor()
		m.RegisterBridge(b)
		router = m.Router()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should list clients", func() {
		b.EXPECT().Snapshot().Return([]bridge.ClientSnapshot{snapshot})

		rec := serve(http.MethodGet, "/api/clients", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		var clients []bridge.ClientSnapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &clients)).To(Succeed())
		Expect(clients).To(HaveLen(1))
		Expect(clients[0].Name).To(Equal("B"))
		Expect(clients[0].FloatVars[0].Value).To(Equal(float32(250)))
	})

	It("should serialize one client", func() {
		b.EXPECT().SnapshotClient("B").Return(snapshot, true)

		rec := serve(http.MethodGet, "/api/client/B", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should report unknown clients", func() {
		b.EXPECT().SnapshotClient("Z").Return(bridge.ClientSnapshot{}, false)

		rec := serve(http.MethodGet, "/api/client/Z", "")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should reject malformed field requests", func() {
		rec := serve(http.MethodGet, "/api/field/notjson", "")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should report the budget", func() {
		b.EXPECT().MaxVarsPerFrame().Return(30)

		rec := serve(http.MethodGet, "/api/budget", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{"max_vars_per_frame":30}`))
	})

	It("should change the budget", func() {
		b.EXPECT().SetMaxVarsPerFrame(10).Return(nil)
		b.EXPECT().MaxVarsPerFrame().Return(10)

		rec := serve(http.MethodPost, "/api/budget", `{"max_vars_per_frame":10}`)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{"max_vars_per_frame":10}`))
	})

	It("should reject an invalid budget", func() {
		b.EXPECT().SetMaxVarsPerFrame(0).Return(errors.New("must be positive"))

		rec := serve(http.MethodPost, "/api/budget", `{"max_vars_per_frame":0}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))

		rec = serve(http.MethodPost, "/api/budget", `ten`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should report the time and frames", func() {
		m.RegisterEngine(sim.NewSerialEngine())
		b.EXPECT().Frames().Return(uint64(42))

		rec := serve(http.MethodGet, "/api/now", "")

		Expect(rec.Body.String()).To(MatchJSON(`{"now":0,"frames":42}`))
	})

	It("should pause and continue the engine", func() {
		rec := serve(http.MethodPost, "/api/pause", "")
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))

		m.RegisterEngine(sim.NewSerialEngine())

		Expect(serve(http.MethodPost, "/api/pause", "").Code).
			To(Equal(http.StatusOK))
		Expect(serve(http.MethodPost, "/api/continue", "").Code).
			To(Equal(http.StatusOK))
	})

	It("should serve counters", func() {
		Expect(serve(http.MethodGet, "/api/counts", "").Body.String()).
			To(MatchJSON(`{}`))

		m.RegisterCounter(staticCounter{"Command": 3})

		Expect(serve(http.MethodGet, "/api/counts", "").Body.String()).
			To(MatchJSON(`{"Command":3}`))
	})

	Context("with buffers", func() {
		BeforeEach(func() {
			m.RegisterBuffers(&bufferOwner{
				name:  "Host",
				inbox: fill(sim.NewBuffer("Host.Inbox", 4), 3),
				Queue: fill(sim.NewBuffer("Host.Queue", 10), 4),
			})
		})

		It("should register buffer fields", func() {
			Expect(m.buffers).To(HaveLen(2))
		})

		It("should panic on non-struct owners", func() {
			Expect(func() { m.RegisterBuffers(3) }).To(Panic())
		})

		It("should sort by percent", func() {
			rec := serve(http.MethodGet, "/api/buffers", "")

			Expect(rec.Body.String()).To(MatchJSON(`[
				{"buffer":"Host.Inbox","level":3,"cap":4},
				{"buffer":"Host.Queue","level":4,"cap":10}
			]`))
		})

		It("should sort by level and limit", func() {
			rec := serve(http.MethodGet, "/api/buffers?sort=level&limit=1", "")

			Expect(rec.Body.String()).To(MatchJSON(`[
				{"buffer":"Host.Queue","level":4,"cap":10}
			]`))
		})

		It("should apply the offset", func() {
			rec := serve(http.MethodGet, "/api/buffers?offset=5", "")

			Expect(rec.Body.String()).To(MatchJSON(`[]`))
		})

		It("should reject bad parameters", func() {
			Expect(serve(http.MethodGet, "/api/buffers?sort=name", "").Code).
				To(Equal(http.StatusBadRequest))
			Expect(serve(http.MethodGet, "/api/buffers?limit=x", "").Code).
				To(Equal(http.StatusBadRequest))
		})
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("Frames", 2)

		bar.Func(sim.HookCtx{Pos: bridge.HookPosFramePolled})
		bar.Func(sim.HookCtx{Pos: bridge.HookPosCommand})
		Expect(bar.Done()).To(BeFalse())
		bar.Func(sim.HookCtx{Pos: bridge.HookPosFramePolled})
		Expect(bar.Done()).To(BeTrue())

		rec := serve(http.MethodGet, "/api/progress", "")
		Expect(rec.Body.String()).To(ContainSubstring(`"finished":2`))

		m.CompleteProgressBar(bar)
		rec = serve(http.MethodGet, "/api/progress", "")
		Expect(rec.Body.String()).To(MatchJSON(`[]`))
	})

	It("should report process resources", func() {
		rec := serve(http.MethodGet, "/api/resource", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		rsp := resourceRsp{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should serve the web page", func() {
		rec := serve(http.MethodGet, "/", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
	})
})
