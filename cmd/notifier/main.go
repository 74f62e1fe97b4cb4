// Command notifier consumes domain events and sends the related emails.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"microcourses/config"
	"microcourses/logger"
	"microcourses/mailer"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.RabbitMQ.URL == "" {
		log.Fatal("RABBITMQ_URL is required for the notifier")
	}

	appLogger := logger.NewRollbarLogger(log.New(os.Stdout, "[notifier] ", log.LstdFlags), cfg.RollbarToken, cfg.AppEnv)
	defer appLogger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	n := &notifier{mailer: mailer.New(cfg.Mail, appLogger), logger: appLogger}
	if err := n.run(ctx, cfg.RabbitMQ); err != nil && ctx.Err() == nil {
		appLogger.Error("notifier stopped", err)
		os.Exit(1)
	}
}
