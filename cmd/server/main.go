package main

import (
	"context"
	"log"
	"os"

	"github.com/Santi-a-ux/Horios-OTT/internal/buildinfo"
	"github.com/Santi-a-ux/Horios-OTT/internal/server"
	"github.com/Santi-a-ux/Horios-OTT/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
