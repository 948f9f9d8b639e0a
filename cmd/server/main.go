package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/okulpusula/pusula-backend/internal/app"
	"github.com/okulpusula/pusula-backend/internal/observability"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	shutdownOTel := observability.InitOTel(context.Background(), a.Log, observability.OtelConfig{
		ServiceName: "pusula-backend",
		Environment: a.Cfg.Environment,
		Version:     a.Cfg.Version,
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(ctx)
		}()
	}

	a.Log.Info("Server listening", "addr", a.Cfg.HTTPAddr)
	if err := a.Run(a.Cfg.HTTPAddr); err != nil {
		a.Log.Error("Server failed", "error", err)
	}
}
