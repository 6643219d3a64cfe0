package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/deltakit/deltakit/internal/logging"
	"github.com/deltakit/deltakit/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to deltad config file (toml)")
	flag.Parse()

	logging.ConfigureRuntime()
	logger := log.With().Str("app", "deltad").Logger()

	cfg := server.DefaultConfig()
	if *configPath != "" {
		loaded, err := loadServerConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "deltad: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := server.New(cfg, logger).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "deltad: %v\n", err)
		os.Exit(1)
	}
}
