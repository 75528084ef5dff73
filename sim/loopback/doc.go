// Package loopback provides an in-process host for the bridge. It keeps the
// shared data areas in memory, evaluates expressions against a variable table
// loaded from YAML, and emits frames from a serial event engine. External
// clients are simulated with Client values that write commands and read the
// data areas like a real client process would.
package loopback
