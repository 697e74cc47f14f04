package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xgrece/bodegon/config"
	"github.com/xgrece/bodegon/database"
	"github.com/xgrece/bodegon/kds"
	"github.com/xgrece/bodegon/router"
	"github.com/xgrece/bodegon/utils"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := run(sigCh); err != nil {
		log.Fatalf("bodegon: %v", err)
	}
}

// run serves until stop fires or the listener fails. Every resource opened here is
// closed before it returns.
func run(stop <-chan os.Signal) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := utils.ConfigureLogger(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	hub := kds.NewHub()

	var relay kds.Notifier
	if cfg.KafkaEnabled() {
		kafkaRelay := kds.NewKafkaRelay(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := kafkaRelay.Close(); err != nil {
				utils.ErrorLogger.WithError(err).Error("Kafka relay close failed")
			}
		}()
		relay = kafkaRelay
		utils.InfoLogger.Printf("Relaying record events to Kafka topic %s", cfg.Kafka.Topic)
	}

	r := router.SetupRouter(db, cfg, hub, relay)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	serveErr := make(chan error, 1)
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	}

	utils.InfoLogger.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
