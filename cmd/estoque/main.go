package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Inventario-estoque/internal/application/inventory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		outcome := inventory.OutcomeOf(err, "")
		fmt.Fprintln(os.Stderr, outcome.Message)
		if outcome.Fatal {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
