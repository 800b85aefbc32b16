package main

import (
	"context"
	"os"
	"os/signal"

	"literary_voice/cmd/literary-voice/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	commands.ExecuteContext(ctx)
}
