package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	deliveryservice "mercurio/contexts/commerce-operations/delivery-service"
	geocodeadapter "mercurio/contexts/commerce-operations/delivery-service/adapters/geocode"
	deliverypostgres "mercurio/contexts/commerce-operations/delivery-service/adapters/postgres"
	salesservice "mercurio/contexts/commerce-operations/sales-service"
	salespostgres "mercurio/contexts/commerce-operations/sales-service/adapters/postgres"
	onboardingservice "mercurio/contexts/identity-access/onboarding-service"
	cognitoadapter "mercurio/contexts/identity-access/onboarding-service/adapters/cognito"
	onboardingpostgres "mercurio/contexts/identity-access/onboarding-service/adapters/postgres"
	"mercurio/internal/platform/config"
	"mercurio/internal/platform/db"
	"mercurio/internal/platform/httpserver"
	"mercurio/internal/platform/messaging"
	"mercurio/internal/shared/events"
	"mercurio/internal/shared/ledger"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const deliveryOrigin = "delivery-service"

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	delivery deliveryservice.Module
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres  *db.Postgres
	consumers []*messaging.Consumer
	delivery  deliveryservice.Module
	logger    *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}

	identity := cognitoadapter.NewProvider(
		cognitoidentityprovider.NewFromConfig(awsCfg),
		cfg.CognitoUserPoolID,
		cfg.CognitoClientID,
		cfg.CognitoClientSecret,
		logger,
	)
	onboardingRepo := onboardingpostgres.NewRepository(pg.DB, logger)
	onboarding := onboardingservice.NewModule(onboardingservice.Dependencies{
		Identity:       identity,
		ClientProfiles: onboardingRepo,
		SellerProfiles: onboardingRepo,
		SellerGroup:    cfg.SellerGroupName,
		Clock:          onboardingpostgres.SystemClock{},
		IDGenerator:    onboardingpostgres.UUIDGenerator{},
		Logger:         logger,
	})

	delivery := buildDeliveryModule(cfg, pg, sns.NewFromConfig(awsCfg), logger)

	server := httpserver.New(onboarding, delivery, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		delivery: delivery,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}
	sqsClient := sqs.NewFromConfig(awsCfg)

	salesRepo := salespostgres.NewRepository(pg.DB, logger)
	sales := salesservice.NewModule(salesservice.Dependencies{
		Repo:   salesRepo,
		Ledger: ledger.NewStoreFor(pg.DB, salespostgres.LedgerTable),
		Clock:  salespostgres.SystemClock{},
		Logger: logger,
	})

	delivery := buildDeliveryModule(cfg, pg, sns.NewFromConfig(awsCfg), logger)

	// One consumer per context queue; the topic fans the same fact out to
	// both, and each context's ledger absorbs its own redeliveries.
	salesConsumer := messaging.NewConsumer(sqsClient, messaging.ConsumerConfig{
		QueueURL:    cfg.SalesEventsQueueURL,
		MaxMessages: int32(cfg.QueueMaxMessages),
		WaitTime:    time.Duration(cfg.QueueWaitSeconds) * time.Second,
	}, logger.With("queue", "sales-events"))
	salesConsumer.RegisterHandler(events.TypeOrderCreated, sales.OrderCreated.Handle)

	deliveryConsumer := messaging.NewConsumer(sqsClient, messaging.ConsumerConfig{
		QueueURL:    cfg.DeliveryEventsQueueURL,
		MaxMessages: int32(cfg.QueueMaxMessages),
		WaitTime:    time.Duration(cfg.QueueWaitSeconds) * time.Second,
	}, logger.With("queue", "delivery-events"))
	deliveryConsumer.RegisterHandler(events.TypeOrderCreated, delivery.OrderCreated.Handle)

	return &WorkerApp{
		postgres:  pg,
		consumers: []*messaging.Consumer{salesConsumer, deliveryConsumer},
		delivery:  delivery,
		logger:    logger,
	}, nil
}

func buildDeliveryModule(cfg config.Config, pg *db.Postgres, topic *sns.Client, logger *slog.Logger) deliveryservice.Module {
	repo := deliverypostgres.NewRepository(pg.DB, logger)
	publisher := messaging.NewPublisher(topic, cfg.OrderEventsTopicARN, deliveryOrigin, logger)
	return deliveryservice.NewModule(deliveryservice.Dependencies{
		Shipments:    repo,
		Vehicles:     repo,
		Routes:       repo,
		Geocoder:     geocodeadapter.NewNominatimGeocoder(cfg.GeocoderBaseURL, logger),
		Publisher:    publisher,
		Ledger:       ledger.NewStoreFor(pg.DB, deliverypostgres.LedgerTable),
		Clock:        deliverypostgres.SystemClock{},
		IDGenerator:  deliverypostgres.UUIDGenerator{},
		LeadTimeDays: cfg.DeliveryLeadTimeDays,
		Logger:       logger,
	})
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	a.delivery.Geocoding.Wait()
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	for _, consumer := range w.consumers {
		go consumer.Start(ctx)
	}

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"consumers", len(w.consumers),
	)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, consumer := range w.consumers {
		consumer.Stop(stopCtx)
	}
	w.delivery.Geocoding.Wait()
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
