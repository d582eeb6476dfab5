// main.go

package main

import (
	"github.com/joho/godotenv"

	"github.com/StrataNetworks/fabricsync/cmd"
	"github.com/StrataNetworks/fabricsync/pkg/config"
	"github.com/StrataNetworks/fabricsync/pkg/logger"
	"github.com/StrataNetworks/fabricsync/pkg/telemetry"
)

func main() {
	// A local .env is optional; env vars win either way.
	_ = godotenv.Load()

	logger.InitializeWithFallback()
	log := logger.L()

	if err := config.Init(); err != nil {
		log.Fatal("Config initialization failed: " + err.Error())
	}
	if err := telemetry.Init("fabricsync", config.TelemetryEnabled()); err != nil {
		log.Warn("Telemetry disabled: " + err.Error())
	}

	cmd.Execute()
}
