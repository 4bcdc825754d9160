package main

import (
	"os"

	"github.com/mmynk/splitledger/cmd/settlectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
