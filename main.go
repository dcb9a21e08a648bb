package main

import (
	"fmt"
	"os"

	"q.log/lpsolve/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
