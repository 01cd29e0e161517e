package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acadverify/student-auth-service/internal/app"
	"github.com/acadverify/student-auth-service/internal/di"
)

func main() {
	a, err := di.InitializeApp()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	go func() {
		a.Logger.Info("student auth service listening",
			"addr", a.Server.Addr, "env", a.Config.Env)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	a.Logger.Info("shutdown signal received", "signal", s.String())

	shutdown(a)
}

// shutdown drains in stages: in-flight HTTP first, then telemetry
// flush, then the redis and database connections.
func shutdown(a *app.App) {
	total := a.ShutdownTimeout
	if total <= 0 {
		total = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), total)
	defer cancel()

	stage := func(name string, timeout time.Duration, fn func(context.Context) error) {
		if timeout <= 0 {
			timeout = total
		}
		stageCtx, stageCancel := context.WithTimeout(ctx, timeout)
		defer stageCancel()
		if err := fn(stageCtx); err != nil {
			a.Logger.Error("shutdown stage failed", "stage", name, "error", err)
		}
	}

	stage("http", a.ShutdownHTTPDrainTimeout, a.Server.Shutdown)
	if a.Observability != nil {
		stage("observability", a.ShutdownObservabilityTimeout, a.Observability.Shutdown)
	}
	if a.Redis != nil {
		stage("redis", 0, func(context.Context) error { return a.Redis.Close() })
	}
	if a.DB != nil {
		stage("database", 0, func(context.Context) error {
			sqlDB, err := a.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	}
	a.Logger.Info("shutdown complete")
}
