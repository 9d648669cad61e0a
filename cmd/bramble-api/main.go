package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bramblecoop/bramble/config"
	"github.com/bramblecoop/bramble/controllers"
	"github.com/bramblecoop/bramble/payouts"
	"github.com/bramblecoop/bramble/routes"
	"github.com/bramblecoop/bramble/routes/middlewares"
	"github.com/bramblecoop/bramble/storage"
	"github.com/bramblecoop/bramble/storage/memory"
)

func newHandler(memoryMode bool, summaries controllers.RunSummaryReader) *controllers.Handler {
	if memoryMode {
		store := memory.NewStore()
		return controllers.NewHandler(store, memory.Payouts{Store: store}, summaries, config.Logger)
	}

	return controllers.NewHandler(
		storage.NewLedgerRepository(config.DataBase),
		storage.NewPayoutRepository(config.DataBase),
		summaries,
		config.Logger,
	)
}

func main() {
	memoryMode := len(os.Args) > 1 && os.Args[1] == "--memory"

	initialize := config.InitializeConfig
	if memoryMode {
		initialize = config.InitializeLocal
	}

	cfg, err := initialize()
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
	defer config.Close()

	publicKey, err := middlewares.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		config.Fatalf("Failed to parse JWT_PUBLIC_KEY: %v", err)
	}

	var summaries controllers.RunSummaryReader
	if config.Redis != nil {
		summaries = &payouts.CacheSummaryStore{Cache: config.Redis}
	}

	if memoryMode {
		config.Logger.Warn("Running with in-memory storage, data is lost on exit")
	}

	app := routes.SetupRouter(newHandler(memoryMode, summaries), publicKey)

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		<-signals

		config.Logger.Info("Shutting down bramble-api")
		app.Shutdown()
	}()

	config.Logger.Infof("bramble-api listening on :%s", cfg.APIPort)
	if err := app.Listen(":" + cfg.APIPort); err != nil {
		config.Logger.Errorf("bramble-api stopped: %v", err)
	}
}
