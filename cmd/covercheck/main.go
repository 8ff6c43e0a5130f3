package main

import (
	"os"

	"github.com/covercheck-dev/covercheck/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
