// Command sercat streams bytes between a serial device and the standard
// streams, configuring the line for raw transmission on the way in.
package main

import "github.com/geertu/sercat/cmd"

func main() {
	cmd.Execute()
}
