package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/dempa-dev/dempa/internal/router"
	"github.com/dempa-dev/dempa/internal/setup"
	"github.com/dempa-dev/dempa/shared/config"
	"github.com/dempa-dev/dempa/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setup failed", "err", err)
		os.Exit(1)
	}
	defer deps.Pool.Close()

	r := router.New(deps)

	logger.Log.Info("server started", "addr", cfg.Public.ListenAddr, "pubkey", deps.Signer.Pubkey())
	if err := http.ListenAndServe(cfg.Public.ListenAddr, r); err != nil {
		logger.Log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
