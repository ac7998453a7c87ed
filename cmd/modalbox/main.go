package main

import (
	"os"

	"github.com/go-drift/modalbox/cmd/modalbox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
