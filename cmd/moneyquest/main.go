// Command moneyquest runs the Money Quest game core.
package main

import (
	"os"

	"github.com/moneyquest/moneyquest/internal/cli"
)

// Set by -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
