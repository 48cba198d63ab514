package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/desktop"
	gamecfg "github.com/tomz197/invaders/internal/loop/config"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "invaders"})

	cfg, err := gamecfg.Load(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if err := desktop.Run(cfg, logger); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
