package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

var ErrInvalidStorageDriver = errors.New("invalid STORAGE_DRIVER")

// Config holds every runtime setting of the payments service.
//
// Values come from the environment (a .env file is autoloaded by main) and,
// optionally, from a YAML file passed with --config. Environment wins.
type Config struct {
	Port          int
	APIVersion    string
	StorageDriver string
	DatabaseURL   string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string

	BookingsTable        string
	TransactionsTable    string
	IdempotencyKeysTable string
	ActivityLogsTable    string

	AuthURL    string
	AuthAPIKey string

	PaymentGatewayMock        bool
	MercadoPagoAccessToken    string
	MercadoPagoTestPayerEmail string
	PaymentChargeTimeout      time.Duration

	IdempotencyKeyTTL   time.Duration
	IdempotencyLeaseTTL time.Duration
	SweepInterval       time.Duration
	ShutdownTimeout     time.Duration

	CORSAllowedOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_VERSION", "1.0.0")
	v.SetDefault("STORAGE_DRIVER", StorageDynamoDB)
	v.SetDefault("DATABASE_URL", "")

	v.SetDefault("AWS_REGION", "us-east-1")
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("DYNAMODB_ENDPOINT", "")

	v.SetDefault("BOOKINGS_TABLE", "bookings")
	v.SetDefault("TRANSACTIONS_TABLE", "transactions")
	v.SetDefault("IDEMPOTENCY_KEYS_TABLE", "idempotency_keys")
	v.SetDefault("ACTIVITY_LOGS_TABLE", "activity_logs")

	v.SetDefault("AUTH_URL", "")
	v.SetDefault("AUTH_API_KEY", "")

	v.SetDefault("PAYMENT_GATEWAY_MOCK", true)
	v.SetDefault("MERCADOPAGO_ACCESS_TOKEN", "")
	v.SetDefault("MERCADOPAGO_TEST_PAYER_EMAIL", "")
	v.SetDefault("PAYMENT_CHARGE_TIMEOUT", 30*time.Second)

	v.SetDefault("IDEMPOTENCY_KEY_TTL", 24*time.Hour)
	v.SetDefault("IDEMPOTENCY_LEASE_TTL", 2*time.Minute)
	v.SetDefault("SWEEP_INTERVAL", time.Hour)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

// Load reads configuration. configFile may be empty.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		Port:          v.GetInt("PORT"),
		APIVersion:    v.GetString("API_VERSION"),
		StorageDriver: strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:   v.GetString("DATABASE_URL"),

		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		DynamoDBEndpoint:   v.GetString("DYNAMODB_ENDPOINT"),

		BookingsTable:        v.GetString("BOOKINGS_TABLE"),
		TransactionsTable:    v.GetString("TRANSACTIONS_TABLE"),
		IdempotencyKeysTable: v.GetString("IDEMPOTENCY_KEYS_TABLE"),
		ActivityLogsTable:    v.GetString("ACTIVITY_LOGS_TABLE"),

		AuthURL:    strings.TrimRight(v.GetString("AUTH_URL"), "/"),
		AuthAPIKey: v.GetString("AUTH_API_KEY"),

		PaymentGatewayMock:        v.GetBool("PAYMENT_GATEWAY_MOCK"),
		MercadoPagoAccessToken:    v.GetString("MERCADOPAGO_ACCESS_TOKEN"),
		MercadoPagoTestPayerEmail: v.GetString("MERCADOPAGO_TEST_PAYER_EMAIL"),
		PaymentChargeTimeout:      v.GetDuration("PAYMENT_CHARGE_TIMEOUT"),

		IdempotencyKeyTTL:   v.GetDuration("IDEMPOTENCY_KEY_TTL"),
		IdempotencyLeaseTTL: v.GetDuration("IDEMPOTENCY_LEASE_TTL"),
		SweepInterval:       v.GetDuration("SWEEP_INTERVAL"),
		ShutdownTimeout:     v.GetDuration("SHUTDOWN_TIMEOUT"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise surface as confusing runtime errors.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDynamoDB, StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStorageDriver, c.StorageDriver)
	}
	if c.IdempotencyLeaseTTL <= 0 {
		return errors.New("IDEMPOTENCY_LEASE_TTL must be positive")
	}
	if c.PaymentChargeTimeout < 0 {
		return errors.New("PAYMENT_CHARGE_TIMEOUT must not be negative")
	}
	if c.IdempotencyKeyTTL < c.IdempotencyLeaseTTL {
		return errors.New("IDEMPOTENCY_KEY_TTL must not be shorter than IDEMPOTENCY_LEASE_TTL")
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
