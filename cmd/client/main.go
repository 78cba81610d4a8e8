package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/todokeeper/internal/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := client.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Printf("%v", err)
	}

}
