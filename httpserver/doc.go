/*
Package httpserver implements the HTTP server shell for the package-metadata
provider service.

It mounts the provider lookup API together with the operational endpoints a
deployment needs: health checks, drain control for load balancers, an
optional pprof surface, and a separate Prometheus metrics listener.

# Endpoints

  - GET /api/provider/v1/appid/{uid} - package metadata for a UID
  - GET /livez - liveness check
  - GET /readyz - readiness check
  - GET /drain - gracefully mark server as not ready
  - GET /undrain - mark server as ready

# Example Usage

	cfg := &httpserver.HTTPServerConfig{
		ListenAddr:               ":8080",
		MetricsAddr:              ":9090",
		Log:                      logger,
		DrainDuration:            30 * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}

	handler := provider.NewHandler(registry, logger)
	server, err := httpserver.New(cfg, handler)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	server.RunInBackground()
	defer server.Shutdown()
*/
package httpserver
