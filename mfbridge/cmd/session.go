package cmd

import (
	"errors"
	"log"

	"github.com/pkg/browser"

	"github.com/mfbridge/mfbridge/bridge"
	"github.com/mfbridge/mfbridge/config"
	"github.com/mfbridge/mfbridge/datarecording"
	"github.com/mfbridge/mfbridge/eventtable"
	"github.com/mfbridge/mfbridge/monitoring"
	"github.com/mfbridge/mfbridge/sim"
	"github.com/mfbridge/mfbridge/sim/loopback"
	"github.com/mfbridge/mfbridge/tracing"
)

// A session is one bridge attached to a loopback host, together with the
// optional recorder and monitor.
type session struct {
	cfg     config.Config
	runID   string
	host    *loopback.Host
	bridge  *bridge.Bridge
	counter *tracing.CountTracer

	recorder datarecording.DataRecorder
	tracer   *tracing.DBTracer
	run      *datarecording.RunRecorder

	monitor *monitoring.Monitor
}

func newSession(cfg config.Config, logger *log.Logger) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		runID:   sim.NewRunID(),
		counter: tracing.NewCountTracer(),
	}

	if err := s.buildHost(logger); err != nil {
		return nil, err
	}

	if err := s.buildBridge(logger); err != nil {
		return nil, err
	}

	if cfg.Record {
		if err := s.startRecording(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *session) buildHost(logger *log.Logger) error {
	ns := loopback.NewNamespace(loopback.Fixture{})

	if s.cfg.Fixture != "" {
		var err error

		ns, err = loopback.LoadNamespace(s.cfg.Fixture)
		if err != nil {
			return err
		}
	}

	builder := loopback.MakeBuilder().
		WithFrameRate(sim.Freq(s.cfg.FrameRate)).
		WithFrameLimit(s.cfg.FrameLimit).
		WithInboxSize(s.cfg.InboxSize).
		WithNamespace(ns)
	if s.cfg.RealTime {
		builder = builder.WithRealTime()
	}

	if s.cfg.TraceEvents {
		builder = builder.WithEngineHooks(sim.NewEventLogger(logger))
	}

	s.host = builder.Build("Host")

	return nil
}

func (s *session) buildBridge(logger *log.Logger) error {
	events := &eventtable.Table{}

	if len(s.cfg.EventFiles) > 0 {
		var err error

		events, err = eventtable.Load(s.cfg.EventFiles...)
		if err != nil {
			return err
		}
	}

	s.bridge = bridge.MakeBuilder().
		WithTransport(s.host.Transport()).
		WithNamespace(s.host.Namespace()).
		WithMaxVarsPerFrame(s.cfg.MaxVarsPerFrame).
		WithMaxNameScan(s.cfg.MaxNameScan).
		WithDefaultClientName(s.cfg.DefaultClient).
		WithGrammar(s.cfg.BridgeGrammar()).
		WithEventTable(events).
		WithHooks(bridge.NewLogHook(logger, s.cfg.Verbose), s.counter).
		Build("Bridge")

	s.host.Attach(s.bridge)

	return nil
}

func (s *session) startRecording() error {
	recorder, err := datarecording.New(s.cfg.RecordPath)
	if err != nil {
		return err
	}

	s.recorder = recorder

	s.tracer = tracing.NewDBTracer(s.host.Engine(), recorder)
	s.tracer.RecordWrites(s.cfg.RecordWrites)
	s.tracer.RecordFrames(s.cfg.RecordFrames)
	tracing.CollectTrace(s.bridge, s.tracer)

	s.run = datarecording.NewRunRecorder(recorder, s.runID)
	s.run.Set("Version", bridge.Version)
	s.run.Set("Grammar", s.bridge.Grammar().Name)
	s.run.Set("Default Client", s.bridge.DefaultClient().Name)
	s.run.Start()

	return nil
}

// startMonitor serves the monitor and returns its URL. It opens the page in
// a browser if asked to.
func (s *session) startMonitor(open bool) (string, error) {
	s.monitor = monitoring.NewMonitor().WithPortNumber(s.cfg.MonitorPort)
	s.monitor.RegisterEngine(s.host.Engine())
	s.monitor.RegisterBridge(s.bridge)
	s.monitor.RegisterCounter(s.counter)
	s.monitor.RegisterBuffers(s.host)

	if s.cfg.FrameLimit > 0 {
		bar := s.monitor.CreateProgressBar("Frames", s.cfg.FrameLimit)
		s.bridge.AcceptHook(bar)
	}

	url, err := s.monitor.StartServer()
	if err != nil {
		return "", err
	}

	if open {
		if err := browser.OpenURL(url); err != nil {
			return url, err
		}
	}

	return url, nil
}

// close writes the run information and closes the recording.
func (s *session) close() error {
	if s.recorder == nil {
		return nil
	}

	return errors.Join(s.run.End(), s.recorder.Close())
}
