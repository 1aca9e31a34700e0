package main

import (
	"beautify/internal/auth"
	availabilityhandler "beautify/internal/availability/handler"
	availabilityservice "beautify/internal/availability/service"
	barberhandler "beautify/internal/barbers/handler"
	barberrepository "beautify/internal/barbers/repository"
	barberservice "beautify/internal/barbers/service"
	barbervalidator "beautify/internal/barbers/validator"
	bookinghandler "beautify/internal/bookings/handler"
	bookingrepository "beautify/internal/bookings/repository"
	bookingservice "beautify/internal/bookings/service"
	bookingvalidator "beautify/internal/bookings/validator"
	cataloghandler "beautify/internal/catalog/handler"
	catalogrepository "beautify/internal/catalog/repository"
	catalogservice "beautify/internal/catalog/service"
	"beautify/internal/events"
	paymenthandler "beautify/internal/payments/handler"
	paymentrepository "beautify/internal/payments/repository"
	paymentservice "beautify/internal/payments/service"
	"beautify/internal/payments/stripe"
	paymentvalidator "beautify/internal/payments/validator"
	userhandler "beautify/internal/users/handler"
	userrepository "beautify/internal/users/repository"
	userservice "beautify/internal/users/service"
	uservalidator "beautify/internal/users/validator"
	"beautify/pkg/app"
	"beautify/pkg/config"
	"beautify/pkg/contracts"
	mongox "beautify/pkg/db/mongo"
	"beautify/pkg/kafka"
	kafka_config "beautify/pkg/kafka/config"
	kafka_middleware "beautify/pkg/kafka/middleware"
	"beautify/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const ServiceName = "beautify-server"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Beautify Me server")
	cfg.SetMongo()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	serverApp := app.NewApplication(cfg, m)
	serverApp.OnShutdown(cfg.GracefulShutdown)

	publisher := initPublisher(cfg, m, serverApp)
	handlers := initHandlers(cfg, m, publisher)

	serverApp.SetApp(app.NewHealthHandler(cfg.Client.Mongo, cfg.Log), handlers...)
	serverApp.Run()
}

// initPublisher returns a Kafka-backed publisher when KAFKA_ENABLED is set
// and a no-op publisher otherwise.
func initPublisher(cfg *config.Config, m *metrics.Metrics, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, domain events are not published")
		return events.Noop{}
	}

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware(m))

	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	cfg.Log.Info("Kafka event publishing enabled", "topic", producer.Topic())
	return events.NewKafkaPublisher(producer, kafkaCfg.PublishTimeout, cfg.Log)
}

func initHandlers(cfg *config.Config, m *metrics.Metrics, publisher events.Publisher) []contracts.Handler {
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	users := userservice.NewUserService(
		userrepository.NewMongoUserRepository(cfg),
		uservalidator.NewUserValidator(cfg.Log),
		tokens,
		cfg.Log,
	)
	gate := auth.NewGate(tokens, users, cfg.Log)

	catalog := catalogservice.NewCatalogService(catalogrepository.NewMongoServiceRepository(cfg), cfg.Log)

	bookings := bookingservice.NewBookingService(bookingservice.Deps{
		Repo:      bookingrepository.NewMongoBookingRepository(cfg),
		LockRepo:  bookingrepository.NewBookingLockRepository(cfg),
		Validator: bookingvalidator.NewBookingValidator(cfg.Log),
		Publisher: publisher,
		Metrics:   m,
		LockTTL:   cfg.BookingLockTTL,
		Log:       cfg.Log,
	})

	availability := availabilityservice.NewAvailabilityService(catalog, bookings, cfg.Log)

	var txManager mongox.TransactionManager
	if cfg.PaymentTransactional {
		txManager = mongox.NewTransactionManager(cfg.Client.Mongo)
		cfg.Log.Info("Payment confirmation runs in a transaction")
	}
	intents := stripe.NewIntentClient(cfg.StripeSecretKey, cfg.Log).
		WithBaseURL(cfg.StripeBaseURL).
		WithDryRun(cfg.StripeDryRun)
	payments := paymentservice.NewPaymentService(paymentservice.Deps{
		Repo:      paymentrepository.NewMongoPaymentRepository(cfg),
		Bookings:  bookings,
		Intents:   intents,
		Validator: paymentvalidator.NewPaymentValidator(cfg.Log),
		TxManager: txManager,
		Publisher: publisher,
		Metrics:   m,
		Log:       cfg.Log,
	})

	barbers := barberservice.NewBarberService(
		barberrepository.NewMongoBarberRepository(cfg),
		barbervalidator.NewBarberValidator(cfg.Log),
		cfg.Log,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		userhandler.NewUserHandler(users, gate, cfg.Log),
		cataloghandler.NewCatalogHandler(catalog, cfg.Log),
		availabilityhandler.NewAvailabilityHandler(availability, cfg.Log),
		bookinghandler.NewBookingHandler(bookings, gate, cfg.Log),
		paymenthandler.NewPaymentHandler(payments, gate, cfg.Log),
		barberhandler.NewBarberHandler(barbers, gate, cfg.Log),
	}
}
