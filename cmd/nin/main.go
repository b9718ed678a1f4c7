// Command nin validates and generates Norwegian identity numbers from the
// command line. The exit code is the result code: 0 for success, a positive
// code for the first failed rule, and -1 for a syntax error.
package main

import (
	"os"

	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, nin.NewGenerator()))
}
