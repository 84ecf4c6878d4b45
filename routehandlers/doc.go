// Package routehandlers serves a route table over HTTP.
//
// ShellHandler answers history-mode requests for the single page
// application: known paths get the rendered shell, redirect routes become
// HTTP redirects and unknown paths get the not-found view with status 404.
// APIHandler exposes the same table as JSON.
//
//	shell, err := routehandlers.ShellHandler(routehandlers.ShellConfig{
//	    Table:  table,
//	    Assets: os.DirFS("web"),
//	    Title:  dashboard.Title,
//	})
//	if err != nil {
//	    return err
//	}
//
//	handler := routehandlers.Chain(shell,
//	    routehandlers.RecoveryMiddleware(logger),
//	    routehandlers.LoggingMiddleware(routehandlers.LoggingConfig{Logger: logger}),
//	    routehandlers.CacheControlMiddleware(routehandlers.CacheControlConfig{}),
//	)
//
// The middleware here are plain func(http.Handler) http.Handler values and
// work with any handler.
package routehandlers
