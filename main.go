package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "smartcab/internal/config"
	router "smartcab/internal/http"
	"smartcab/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	utils.InitLogger(env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.OpenDB(env)
	if err != nil {
		utils.Log().Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Router (Gin engine)
	r := router.NewRouter(env, db)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Log().Infof("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Log().Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.Log().Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Log().Fatalf("server shutdown failed: %v", err)
	}

	utils.Log().Info("server stopped cleanly")
}
