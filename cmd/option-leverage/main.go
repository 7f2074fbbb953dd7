package main

import (
	"os"

	"github.com/contactkeval/option-leverage/cmd/option-leverage/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
