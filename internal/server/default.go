package server

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/appdeck/userbase/pkg/application"
	"github.com/appdeck/userbase/pkg/configuration"
	"github.com/appdeck/userbase/pkg/httpapi"
	"github.com/appdeck/userbase/pkg/middleware"
	"github.com/appdeck/userbase/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

// Default assembles the HTTP server with the standard middleware stack:
// request-scoped logging with panic recovery, then CORS.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger),
		middleware.Cors(options.Configuration.AllowedOrigins...),
	)
	return server.NewHTTPServer(app, notFoundHandler(), methodNotAllowedHandler()), nil
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, r, http.StatusNotFound, "Resource not found")
	})
}

func methodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
