package main

import (
	"os"

	"mcpi/cmd/mcpi/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
