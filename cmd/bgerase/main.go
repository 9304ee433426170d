package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	// run gets the process arguments, environment and output streams passed in
	// so it can be tested without touching the real ones.
	ctx := context.Background()

	if err := run(ctx, os.Args, os.Getenv, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)

		var usage *usageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
