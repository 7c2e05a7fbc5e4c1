// Command scrambler turns files into archives of encrypted fragments and back.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/scrambler/internal/commands"
	"github.com/idelchi/scrambler/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}
