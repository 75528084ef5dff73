package datarecording

import (
	"os"
	"strings"
	"time"
)

// RunTable is the table written by a RunRecorder.
const RunTable = "run_info"

const timeLayout = "2006-01-02 15:04:05.000000000"

// RunInfo is one property of a bridge run.
type RunInfo struct {
	RunID    string
	Property string
	Value    string
}

// A RunRecorder records how and when the bridge ran.
type RunRecorder struct {
	runID    string
	recorder DataRecorder
	entries  []RunInfo
}

// NewRunRecorder creates the run table in the recorder.
func NewRunRecorder(recorder DataRecorder, runID string) *RunRecorder {
	recorder.CreateTable(RunTable, RunInfo{})

	return &RunRecorder{
		runID:    runID,
		recorder: recorder,
	}
}

// Set records a property of the run, such as the version or the grammar.
func (e *RunRecorder) Set(property, value string) {
	e.entries = append(e.entries, RunInfo{e.runID, property, value})
}

// Start records the start time, the command line and the working directory.
func (e *RunRecorder) Start() {
	e.Set("Start Time", time.Now().Format(timeLayout))
	e.Set("Command", strings.Join(os.Args, " "))

	if cwd, err := os.Getwd(); err == nil {
		e.Set("Working Directory", cwd)
	}
}

// End writes the properties together with the end time and flushes.
func (e *RunRecorder) End() error {
	e.Set("End Time", time.Now().Format(timeLayout))

	for _, entry := range e.entries {
		e.recorder.InsertData(RunTable, entry)
	}

	e.entries = nil

	return e.recorder.Flush()
}
