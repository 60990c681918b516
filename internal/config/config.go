// Package config provides the structures and loader for the YAML config.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all settings for the Gari Langu services.
type Config struct {
	Env                     string `yaml:"env"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	SMTP                    `yaml:"smtp"`
	SMSGateway              `yaml:"sms_gateway"`
	Reminders               `yaml:"reminders"`
	RabbitMQURL             string        `yaml:"rabbitmq_url"`
	RabbitMQMaxRetries      int           `yaml:"rabbitmq_max_retries"`
	RabbitMQRetryDelay      time.Duration `yaml:"rabbitmq_retry_delay"`
}

// HTTPServer holds server settings.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection holds redis client settings.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken holds token signing settings.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// SMTP holds e-mail delivery settings. An empty host disables e-mail.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass"`
}

// SMSGateway holds SMS delivery settings. An empty URL disables SMS.
type SMSGateway struct {
	SMSAPIURL   string `yaml:"sms_api_url"`
	SMSAPIKey   string `yaml:"sms_api_key"`
	SMSSenderID string `yaml:"sms_sender_id"`
}

// Reminders holds the trial and notification windows and the shared
// secret guarding the batch scan endpoint.
type Reminders struct {
	TrialDays       int    `yaml:"trial_days"`
	LookaheadDays   int    `yaml:"lookahead_days"`
	SchedulerSecret string `yaml:"scheduler_secret"`
}

// MustLoad loads the config from the file named by CONFIG_PATH,
// exiting the process on any failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.TrialDays == 0 {
		cfg.TrialDays = 7
	}
	if cfg.LookaheadDays == 0 {
		cfg.LookaheadDays = 7
	}
	return &cfg
}
