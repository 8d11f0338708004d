// Command symdiff evaluates and differentiates expressions in x and y.
//
// Usage:
//
//	symdiff --eval "x*y+5" x=3 y=2
//	symdiff --diff "x*sin(x)" --by x
//	symdiff repl
package main

import (
	"os"

	"github.com/njchilds90/symdiff/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
