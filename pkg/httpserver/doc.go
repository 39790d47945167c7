// Package httpserver runs an http.Server with signal-aware graceful
// shutdown, environment-driven configuration, and health probe handlers.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server exited", logger.Error(err))
//	}
//
// Run blocks until the context is canceled, SIGINT or SIGTERM arrives, or
// the listener fails. In-flight requests get the configured shutdown
// timeout to complete.
package httpserver
