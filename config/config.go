package config

import (
    "log"
    "os"
    "strconv"

    "github.com/joho/godotenv"

    "scholarly-checkout-api/database"
    "scholarly-checkout-api/services/email"
)

type Config struct {
    Database database.DatabaseConfig
    Gateway  GatewayConfig
    SMTP     email.SMTPConfig
    Server   ServerConfig
    Redis    RedisConfig
    Session  SessionConfig
    JWT      JWTConfig
}

type GatewayConfig struct {
    BaseURL    string
    MerchantID string
    APIKey     string
}

type ServerConfig struct {
    Port string
}

type RedisConfig struct {
    URL               string
    WorkerConcurrency int
}

type SessionConfig struct {
    Secret string
    Domain string
    MaxAge int
}

type JWTConfig struct {
    Secret string
    Issuer string
}

func Load() *Config {
    if err := godotenv.Load(); err != nil {
        log.Printf("Warning: Error loading .env file: %v", err)
    }

    workerConcurrency := 2
    if raw := os.Getenv("WORKER_CONCURRENCY"); raw != "" {
        if parsed, err := strconv.Atoi(raw); err == nil {
            workerConcurrency = parsed
        }
    }

    cfg := &Config{
        Database: database.DatabaseConfig{
            Host:     os.Getenv("DB_HOST"),
            User:     os.Getenv("DB_USER"),
            Password: os.Getenv("DB_PASSWORD"),
            DBName:   os.Getenv("DB_NAME"),
        },
        Gateway: GatewayConfig{
            BaseURL:    os.Getenv("GATEWAY_BASE_URL"),
            MerchantID: os.Getenv("GATEWAY_MERCHANT_ID"),
            APIKey:     os.Getenv("GATEWAY_API_KEY"),
        },
        SMTP: email.SMTPConfig{
            Host:     os.Getenv("SMTP_HOST"),
            Port:     os.Getenv("SMTP_PORT"),
            Username: os.Getenv("SMTP_USER"),
            Password: os.Getenv("SMTP_PASSWORD"),
        },
        Server: ServerConfig{
            Port: os.Getenv("SERVER_PORT"),
        },
        Redis: RedisConfig{
            URL:               os.Getenv("REDIS_URL"),
            WorkerConcurrency: workerConcurrency,
        },
        Session: SessionConfig{
            Secret: os.Getenv("SESSION_SECRET"),
            Domain: os.Getenv("SESSION_DOMAIN"),
            MaxAge: 7200,
        },
        JWT: JWTConfig{
            Secret: os.Getenv("JWT_SECRET"),
            Issuer: "scholarly-checkout-api",
        },
    }

    if cfg.Server.Port == "" {
        cfg.Server.Port = "8080"
    }

    if cfg.Redis.URL == "" {
        cfg.Redis.URL = "redis://localhost:6379/0"
        log.Printf("Warning: REDIS_URL not set, using default: %s", cfg.Redis.URL)
    }

    if cfg.Session.Secret == "" {
        log.Printf("Warning: SESSION_SECRET not set, checkout cookies will not survive restarts")
    }

    return cfg
}
