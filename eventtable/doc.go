// Package eventtable loads static event definition files.
//
// An event definition file has one event per line. A line has the form
// `Name#code`, where code is a calculator expression that the host runs when
// the event named `MobiFlight.Name` is triggered. A line without `#` is a
// shorthand for `Name#(>H:Name)`. Lines containing `//` are comments.
package eventtable
