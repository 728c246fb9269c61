// Package bootstrap runs a fetchkit process: it initializes logging from the
// service configuration, starts registered components, runs a task and shuts
// everything down again.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.RegisterComponent(httpclient.NewComponent("api", cfg.Fetch))
//	app.OnStop(func(ctx context.Context) error { return tp.Shutdown(ctx) })
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := client.Send(ctx, "/api/checkToken", nil, nil)
//	    return err
//	})
package bootstrap
