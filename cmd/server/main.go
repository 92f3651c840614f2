package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/headerauth/internal/buildinfo"
	"github.com/dmitrijs2005/headerauth/internal/server"
	"github.com/dmitrijs2005/headerauth/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
