// Command pdqsim replays host byte streams through the communication core.
package main

import (
	"os"

	"github.com/tebeka/atexit"

	"github.com/pdqlab/pdqcore/cmd/pdqsim/cmd"
)

func main() {
	err := cmd.NewRootCommand(os.Stdout).Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
