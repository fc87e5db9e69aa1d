package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/autolock/internal/controller"
	"github.com/dmitrijs2005/autolock/internal/controller/config"
)

func main() {

	cfg := config.LoadConfig()
	app := controller.NewApp(cfg)

	os.Exit(app.Run(context.Background()))

}
