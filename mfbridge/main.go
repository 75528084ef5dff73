// Command mfbridge runs a variable bridge against a loopback host.
package main

import "github.com/mfbridge/mfbridge/mfbridge/cmd"

func main() {
	cmd.Execute()
}
