package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Run failures already carry step and item context from the
		// engine's error wrapping; print them once, prefixed.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "transmute: %v\n", err)
		}
		os.Exit(1)
	}
}
