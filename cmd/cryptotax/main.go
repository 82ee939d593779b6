package main

import (
	"os"

	"github.com/rustyeddy/cryptotax/cmd/cryptotax/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
