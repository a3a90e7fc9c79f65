// Command solguard is the Solidity static analyzer CLI.
package main

import (
	"os"

	"github.com/solguard-labs/solguard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
