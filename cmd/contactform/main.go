package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	err := newRootCommand(app).ExecuteContext(ctx)
	if app.logger != nil {
		_ = app.logger.Sync()
	}
	if err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintf(os.Stderr, "contactform: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
