// Command binder computes a Binder-loss point estimate of a partition from a
// posterior similarity matrix.
//
//	binder run --input psm.csv.zst --output result.json --time-limit 30s
//	binder loss --input psm.csv --labels candidates.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
