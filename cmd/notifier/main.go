package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shayzimm/yallambee-booking-app-backend/internal/notifications"
	userrepository "github.com/shayzimm/yallambee-booking-app-backend/internal/users/repository"
	userservice "github.com/shayzimm/yallambee-booking-app-backend/internal/users/service"
	uservalidator "github.com/shayzimm/yallambee-booking-app-backend/internal/users/validator"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/config"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/kafka"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/mail"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/token"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting notifier service")

	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Fatal("Kafka brokers are required for the notifier")
	}
	if cfg.SMTPHost == "" || cfg.EmailFrom == "" {
		cfg.Log.Fatal("SMTP host and from address are required for the notifier")
	}

	mailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to initialize mailer", "error", err)
	}

	users := userservice.NewUserService(
		userrepository.NewMongoUserRepository(cfg),
		uservalidator.NewUserValidator(cfg.Log),
		token.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		notifications.NewNoopPublisher(),
		cfg,
	)

	emailer := notifications.NewEmailer(users, mailer, cfg.Log)
	consumer, err := kafka.NewConsumer(
		cfg.KafkaBrokers,
		cfg.KafkaEventsTopic,
		cfg.KafkaGroupID,
		emailer.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Consuming events",
		"topic", cfg.KafkaEventsTopic,
		"group_id", cfg.KafkaGroupID,
	)
	if err := consumer.Run(ctx); err != nil {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped gracefully")
}
