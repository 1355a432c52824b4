package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brewandbean/cafe/config"
	"github.com/brewandbean/cafe/database"
	"github.com/brewandbean/cafe/handlers"
	"github.com/brewandbean/cafe/server"
)

const shutdownTimeOut = 10 * time.Second

func main() {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	config.Init()

	if err := database.ConnectAndMigrate(); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	handlers.Init()

	svr := server.SetupRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		logrus.Printf("listening on :%s", port)
		if err := svr.Run(":" + port); err != nil && err != http.ErrServerClosed {
			logrus.Panicf("server failed, error: %v", err)
		}
	}()

	<-done

	logrus.Info("shutting down...")
	if err := svr.Shutdown(shutdownTimeOut); err != nil {
		logrus.WithError(err).Error("failed to shut down server cleanly!")
	}
	if err := database.ShutdownDatabase(); err != nil {
		logrus.WithError(err).Error("failed to close database connection!")
	}

	logrus.Info("system is shut ..zzz")
}
