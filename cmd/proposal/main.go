package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/root"
	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := root.NewCmdRoot()
	err := cmd.ExecuteContext(ctx)
	_ = proposal.GetLogger().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
