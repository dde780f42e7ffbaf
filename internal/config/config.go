package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config holds every runtime setting, loaded from the environment. Business
// rules that drifted across revisions of the storefront (appointment
// capacity, delivery fee) live here rather than as literals.
type Config struct {
	ServerAddr string `envconfig:"SERVER_ADDR" default:"8080"`
	PublicURL  string `envconfig:"PUBLIC_URL" default:"http://localhost:3000"`

	MongoURI    string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName string `envconfig:"MONGO_DB_NAME" default:"dmtouch"`

	AccessTokenSecret       string `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	AccessTokenExpiryInSecs int64  `envconfig:"ACCESS_TOKEN_EXPIRY_IN_SECS" default:"3600"`

	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`

	// TaxRate is applied to the checkout subtotal; DeliveryFeePence is a
	// flat fee appended as its own line item whenever nonzero.
	TaxRate          float64 `envconfig:"TAX_RATE" default:"0.20"`
	DeliveryFeePence int64   `envconfig:"DELIVERY_FEE_PENCE" default:"450"`

	// AppointmentCapacity caps design requests sharing one appointment date.
	AppointmentCapacity int64 `envconfig:"APPOINTMENT_CAPACITY" default:"5"`

	// RedisAddr enables the Redis realtime relay; empty falls back to the
	// in-process broker (single-node deployments and tests).
	RedisAddr string `envconfig:"REDIS_ADDR"`

	SMTPHost string `envconfig:"SMTP_HOST"`
	SMTPPort string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser string `envconfig:"SMTP_USER"`
	SMTPPass string `envconfig:"SMTP_PASS"`
	SMTPFrom string `envconfig:"SMTP_FROM"`
}

// Load reads the configuration from the environment, exiting on missing
// required values.
func Load() *Config {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		logrus.WithError(err).Fatal("failed to load config from environment")
	}

	return cfg
}
