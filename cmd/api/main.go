package main

import (
	"context"

	bookinghandler "github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/handler"
	bookingrepository "github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/repository"
	bookingservice "github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/service"
	bookingvalidator "github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/validator"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/notifications"
	propertyhandler "github.com/shayzimm/yallambee-booking-app-backend/internal/properties/handler"
	propertyrepository "github.com/shayzimm/yallambee-booking-app-backend/internal/properties/repository"
	propertyservice "github.com/shayzimm/yallambee-booking-app-backend/internal/properties/service"
	propertyvalidator "github.com/shayzimm/yallambee-booking-app-backend/internal/properties/validator"
	uploadhandler "github.com/shayzimm/yallambee-booking-app-backend/internal/uploads/handler"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/uploads/storage"
	userhandler "github.com/shayzimm/yallambee-booking-app-backend/internal/users/handler"
	userrepository "github.com/shayzimm/yallambee-booking-app-backend/internal/users/repository"
	userservice "github.com/shayzimm/yallambee-booking-app-backend/internal/users/service"
	uservalidator "github.com/shayzimm/yallambee-booking-app-backend/internal/users/validator"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/app"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/config"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/kafka"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/token"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting API service")

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	publisher := initPublisher(cfg)

	bookingService := initBookingService(cfg, publisher)
	propertyService := initPropertyService(cfg)
	userService := initUserService(cfg, tokens, publisher)

	handlers := []app.Handler{
		bookinghandler.NewBookingHandler(bookingService, tokens, cfg.Log),
		propertyhandler.NewPropertyHandler(propertyService, tokens, cfg.Log),
		userhandler.NewUserHandler(userService, bookingService, tokens, cfg.Log),
	}

	if cfg.S3Bucket != "" {
		store, err := storage.NewS3ImageStore(context.Background(), cfg)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize image store", "error", err)
		}
		handlers = append(handlers, uploadhandler.NewUploadHandler(store, tokens, cfg.UploadMaxBytes, cfg.Log))
	} else {
		cfg.Log.Warn("S3 bucket not configured, image uploads disabled")
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) notifications.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Warn("Kafka brokers not configured, event publishing disabled")
		return notifications.NewNoopPublisher()
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}
	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaEventsTopic)
	return notifications.NewKafkaPublisher(producer)
}

func initBookingService(cfg *config.Config, publisher notifications.Publisher) bookingservice.BookingService {
	svc := bookingservice.NewBookingService(
		bookingrepository.NewMongoBookingRepository(cfg),
		bookingrepository.NewSlotLockRepository(cfg),
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return svc
}

func initPropertyService(cfg *config.Config) propertyservice.PropertyService {
	svc := propertyservice.NewPropertyService(
		propertyrepository.NewMongoPropertyRepository(cfg),
		propertyvalidator.NewPropertyValidator(cfg.Log),
		cfg,
	)
	cfg.Log.Info("Property service initialized", "database", cfg.MongoDatabaseName)
	return svc
}

func initUserService(cfg *config.Config, tokens *token.Manager, publisher notifications.Publisher) userservice.UserService {
	svc := userservice.NewUserService(
		userrepository.NewMongoUserRepository(cfg),
		uservalidator.NewUserValidator(cfg.Log),
		tokens,
		publisher,
		cfg,
	)
	cfg.Log.Info("User service initialized", "database", cfg.MongoDatabaseName)
	return svc
}
