package handler

import (
	"net/http"

	"innkeep/config"
	"innkeep/di"
	"innkeep/shared/logger"
)

// Handler adapts the service for serverless platforms that route every
// request through a single entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()
	app.HTTP.Handler().ServeHTTP(w, r)
}
