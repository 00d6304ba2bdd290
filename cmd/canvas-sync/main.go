package main

import (
	"os"

	"github.com/bianoble/canvas-sync/cmd/canvas-sync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
