package main

import (
	"context"
	"log"
	"os"

	"github.com/Santi-a-ux/Horios-OTT/internal/buildinfo"
	"github.com/Santi-a-ux/Horios-OTT/internal/client/cli"
	"github.com/Santi-a-ux/Horios-OTT/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
