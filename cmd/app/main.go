package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/di"
	"innkeep/infras/session"
	"innkeep/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := cfg.ValidateBackend(); err != nil {
		log.Fatal().Err(err).Msg("Backend configuration is incomplete")
	}

	app := di.InitializeApp()

	ctx := context.Background()

	if err := app.Lifecycle.StartSweep(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start checkout sweep")
	}
	defer app.Lifecycle.StopSweep()

	if cfg.Backend.Realtime.Enable {
		app.Lifecycle.Bind(app.Realtime)

		if err := app.Realtime.Connect(); err != nil {
			log.Warn().Err(err).Msg("Realtime connection failed, continuing without change stream")
		}
		defer app.Realtime.Close()

		// The change stream authenticates with the current credential;
		// re-handshake whenever the session changes.
		app.Sessions.OnChange(func(*session.Session) {
			app.Realtime.Reconnect()
		})
	}

	app.HTTP.Serve()
}
