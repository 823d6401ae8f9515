// Package main is the entry point for the sheetctl CLI.
package main

import (
	"github.com/cellgraph/sheet/internal/cmd"
)

func main() {
	cmd.Execute()
}
