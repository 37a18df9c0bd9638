// main is the entry point for the smellscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/shreyashpatel5506/smellscan/cmd"
	"github.com/shreyashpatel5506/smellscan/internal/iocache"
)

func main() {
	defer iocache.CloseHistory()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		iocache.CloseHistory()
		os.Exit(1)
	}
}
