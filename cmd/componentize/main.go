// Command componentize converts a JavaScript source and a WIT world
// description into a self-contained WebAssembly component (spec §1).
package main

import (
	"fmt"
	"os"

	"github.com/componentize-go/jsc/cmd/componentize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
