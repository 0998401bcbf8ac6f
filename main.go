package main

import (
	"os"

	"github.com/jorman-viafara/wolkvox-chat-viewer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
