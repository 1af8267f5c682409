package main

import (
	"os"

	"github.com/bassista/go_recipes/internal/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Keep stdout for command output.
	logger.Logger.SetOutput(os.Stderr)
	if os.Getenv("LOG_LEVEL") == "" {
		logger.Logger.SetLevel(logrus.WarnLevel)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
