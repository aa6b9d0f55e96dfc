package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/guildchat/internal/console"
	"github.com/dmitrijs2005/guildchat/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()
	app, err := console.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
