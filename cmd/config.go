package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every configuration variable, e.g. DELIVERY_HTTP_PORT.
const EnvPrefix = "DELIVERY"

// Config is the process configuration, read from the environment.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	MailRelayURL     string        `envconfig:"MAIL_RELAY_URL" required:"true"`
	MailSender       string        `envconfig:"MAIL_SENDER" default:"orders@fooddelivery.local"`
	MailRelayTimeout time.Duration `envconfig:"MAIL_RELAY_TIMEOUT" default:"5s"`

	DispatchSchedule    string `envconfig:"DISPATCH_SCHEDULE" default:"*/5 * * * * *"`
	DispatchBatchSize   int    `envconfig:"DISPATCH_BATCH_SIZE" default:"50"`
	DispatchMaxAttempts int    `envconfig:"DISPATCH_MAX_ATTEMPTS" default:"5"`

	OTPAttemptLimit  int64         `envconfig:"OTP_ATTEMPT_LIMIT" default:"5"`
	OTPAttemptWindow time.Duration `envconfig:"OTP_ATTEMPT_WINDOW" default:"15m"`

	CancellationWindow time.Duration `envconfig:"CANCELLATION_WINDOW" default:"30m"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// LoadConfig reads an optional .env file, then the environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "load %s", envFile)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// IsDevelopment reports whether the process runs in a development environment.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}
