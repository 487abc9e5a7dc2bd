package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/cloudvalet/valet/cmd/valet-sandbox/controllers"
	"github.com/cloudvalet/valet/cmd/valet-sandbox/server"
	"github.com/cloudvalet/valet/common"
)

var configPath = flag.String("path", "./etc/", "configuration path")
var listen = flag.String("listen", "", "listen address (overrides configuration)")
var trace = flag.Bool("trace", false, "show trace messages")

func main() {
	flag.Parse()

	config := server.NewDefaultAppConfig()
	if common.PathExist(path.Clean(*configPath + "/valet-sandbox.toml")) {
		var err error
		config, err = server.NewAppConfigFromTomlFile(*configPath)
		if err != nil {
			log.Fatalf("configuration: %s", err)
		}
	}
	if *listen != "" {
		config.Listen = *listen
	}
	if *trace {
		config.Trace = true
	}

	app, err := server.NewApp(config)
	if err != nil {
		log.Fatalln(err)
	}
	controllers.AddRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalln(err)
	}
}
