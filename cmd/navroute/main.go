// Command navroute serves and inspects the dashboard route table.
//
//	navroute serve --config navroute.yaml
//	navroute resolve /firmware-security /transactions/blocks/500
//	navroute routes -o table
//	navroute navigate /accounts /pki back forward
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
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
