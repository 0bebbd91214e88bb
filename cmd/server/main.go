package main

import (
	"context"
	"log"

	"github.com/twit2/t2-auth/internal/server"
	"github.com/twit2/t2-auth/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
