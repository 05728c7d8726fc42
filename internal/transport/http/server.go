package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/burnroom-server/internal/config"
	"github.com/vovakirdan/burnroom-server/internal/core"
)

// NewServer builds the HTTP server in front of the relay.
func NewServer(relay *core.Relay, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(logger))

	relayHandlers := NewRelayHandlers(relay, cfg, logger)
	wsHandler := NewWSHandler(relay, cfg.WSPollInterval, logger)

	router.GET("/health", relayHandlers.Health)

	// Short-lived requests share a bounded pool of in-flight slots.
	gated := router.Group("/", AdmissionMiddleware(cfg.Limits.MaxInFlight, logger))
	gated.GET("/", relayHandlers.Index)
	gated.GET("/messages", relayHandlers.Messages)
	gated.POST("/send", relayHandlers.Send)
	gated.Static("/static", cfg.StaticDir)

	// The WebSocket upgrade hijacks the raw connection, so it bypasses gin's writer.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", wsHandler)
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
