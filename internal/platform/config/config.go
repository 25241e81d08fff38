package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is centralized process configuration. Infra values live here and are
// passed as typed fields into builders; nothing reads the environment outside
// this package.
//
// An empty queue URL disables that context's consumer and an empty
// OrderEventsTopicARN disables the publisher, so a deployment without
// messaging wiring still starts cleanly. The topic fans out to one queue per
// consuming context.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"mercurio"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	AWSRegion              string `env:"AWS_REGION" envDefault:"us-east-1"`
	SalesEventsQueueURL    string `env:"SALES_EVENTS_QUEUE_URL"`
	DeliveryEventsQueueURL string `env:"DELIVERY_EVENTS_QUEUE_URL"`
	OrderEventsTopicARN    string `env:"ORDER_EVENTS_TOPIC_ARN"`
	QueueMaxMessages       int    `env:"QUEUE_MAX_MESSAGES" envDefault:"10"`
	QueueWaitSeconds       int    `env:"QUEUE_WAIT_SECONDS" envDefault:"20"`

	CognitoUserPoolID   string `env:"COGNITO_USER_POOL_ID"`
	CognitoClientID     string `env:"COGNITO_CLIENT_ID"`
	CognitoClientSecret string `env:"COGNITO_CLIENT_SECRET"`
	SellerGroupName     string `env:"COGNITO_SELLER_GROUP" envDefault:"seller_users"`

	GeocoderBaseURL      string `env:"GEOCODER_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	DeliveryLeadTimeDays int    `env:"DELIVERY_LEAD_TIME_DAYS" envDefault:"3"`
}

// Load parses process configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}
