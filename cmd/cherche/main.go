package main

import (
	"fmt"
	"os"

	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/cli"
)

// version is injected at build time via
// -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
