// Package main provides the entry point for the enbyscan CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/enbywiki/enbyscan/cmd/enbyscan/cmd"
)

func main() {
	root := cmd.NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
