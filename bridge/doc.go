// Package bridge exposes host variables to external clients through fixed
// layout shared channels.
//
// Every client owns four channels: a float data area, a command area, a
// response area and a string data area. Clients send text commands on their
// command area to track new variables, and the bridge refreshes a bounded
// number of tracked variables per client on every host frame, writing only
// the values that changed.
//
// The bridge is a sim.Handler. All state changes happen inside Handle, one
// host event at a time.
package bridge
