// aicommit - AI-assisted commit message generation
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/aicommit

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ariel-frischer/aicommit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
