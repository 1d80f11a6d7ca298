// Package main provides the mychat command-line chat client.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/minhyannv/mychat-go/pkg/mychat"
)

// main is the program entry point.
func main() {
	cfg, opts, err := parseCLIConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	chat, err := mychat.New(context.Background(), cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runREPL(chat, opts, os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
