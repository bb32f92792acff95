package main

import (
	"context"
	"log"

	"github.com/flixvault/flixvault/internal/cli"
	"github.com/flixvault/flixvault/internal/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
