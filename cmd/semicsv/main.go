package main

import (
	"os"

	"github.com/oleg578/semicsv/cmd/semicsv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
