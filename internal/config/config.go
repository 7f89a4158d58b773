package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"24h"`
}

type ChapaConfig struct {
	SecretKey     string        `yaml:"secret_key" env:"CHAPA_SECRET_KEY"`
	WebhookSecret string        `yaml:"webhook_secret" env:"CHAPA_WEBHOOK_SECRET"`
	BaseURL       string        `yaml:"base_url" env:"CHAPA_BASE_URL" env-default:"https://api.chapa.co/v1"`
	CallbackURL   string        `yaml:"callback_url" env:"CHAPA_CALLBACK_URL"`
	ReturnURL     string        `yaml:"return_url" env:"CHAPA_RETURN_URL"`
	Timeout       time.Duration `yaml:"timeout" env:"CHAPA_TIMEOUT" env-default:"15s"`
	Currency      string        `yaml:"currency" env:"PAYMENT_CURRENCY" env-default:"ETB"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type SMTPConfig struct {
	Host        string `yaml:"host" env:"SMTP_HOST" env-default:"localhost"`
	Port        int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username    string `yaml:"username" env:"SMTP_USERNAME"`
	Password    string `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail string `yaml:"sender_email" env:"SMTP_SENDER_EMAIL" env-default:"noreply@travelnest.local"`
}

type LoggerConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
}

type Config struct {
	Env         string       `yaml:"env" env:"ENV" env-default:"local"`
	DatabaseURL string       `yaml:"database_url" env:"DATABASE_URL" env-required:"true"`
	HTTP        HTTPConfig   `yaml:"http"`
	JWT         JWTConfig    `yaml:"jwt"`
	Chapa       ChapaConfig  `yaml:"chapa"`
	Redis       RedisConfig  `yaml:"redis"`
	SMTP        SMTPConfig   `yaml:"smtp"`
	Logger      LoggerConfig `yaml:"logger"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
