// Package bootstrap runs the service lifecycle: components start in
// registration order, configure callbacks wire handlers, the app blocks on
// a shutdown signal, and components stop in reverse order.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(httpServer)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    api.Register(httpServer.Engine(), handlers)
//	    return nil
//	})
//	err = app.Run(ctx)
package bootstrap
