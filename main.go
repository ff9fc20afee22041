package main

import (
	"context"
	"log"
	"os"

	"github.com/example/product-manager/config"
	"github.com/example/product-manager/modules/api"
	"github.com/example/product-manager/modules/auth"
	"github.com/example/product-manager/modules/product"
	"github.com/example/product-manager/modules/storage"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Product Manager ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	signingKey, err := cfg.SigningKey()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Plugins start before and stop after the modules that use them.
	storagePlugin := storage.NewPluginModule(storage.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DBDSN,
		Debug:  cfg.DBDebug,
	}, app.Logger())
	if err := app.RegisterPlugin(storagePlugin, storage.PluginAlias); err != nil {
		log.Fatalf("Failed to register storage plugin: %v", err)
	}

	app.Register(auth.NewModule(auth.Config{
		SigningKey:     signingKey,
		PasswordScheme: cfg.PasswordScheme,
	}, app.Logger()))
	app.Register(product.NewModule(app.Logger()))
	app.Register(api.NewModule(api.Config{
		Addr:               cfg.HTTPAddr,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, app.Logger()))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	log.Printf("Listening on %s (driver=%s, password scheme=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.PasswordScheme)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
