package main

import (
	"LocalPaint/internal/config"
	"LocalPaint/internal/ui"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	cfg.SetupLogging()

	logrus.WithFields(logrus.Fields{
		"app_id": cfg.AppID,
		"key":    cfg.StorageKey,
	}).Info("starting LocalPaint")
	ui.RunApp(cfg)
}
