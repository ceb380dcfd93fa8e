// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
//
// Поле Env управляет режимом работы ("development" или "production"):
// в production нормализатор ошибок скрывает детали внутренних сбоев.
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"development"`
	MongoConnection `yaml:"mongo_connection"`
	HTTPServer      `yaml:"http_server"`
	JWTToken        `yaml:"jwttoken"`
	SMTPConnection  `yaml:"smtp_connection"`
}

// MongoConnection структура для настройки подключения к MongoDB.
type MongoConnection struct {
	URI      string `yaml:"uri" env:"MONGODB_URI"`
	Database string `yaml:"database" env-default:"my-portfolio"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":9000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"2160h"` // 90 дней
}

// SMTPConnection структура для настройки отправки почты.
type SMTPConnection struct {
	SMTPHost          string `yaml:"smtp_host"`
	SMTPPort          string `yaml:"smtp_port" env-default:"587"`
	SMTPUser          string `yaml:"smtp_user" env:"EMAIL_USER"`
	SMTPPass          string `yaml:"smtp_pass" env:"EMAIL_APP_PASSWORD"`
	NotificationEmail string `yaml:"notification_email" env:"NOTIFICATION_EMAIL"`
	OwnerName         string `yaml:"owner_name" env-default:"Florien"`
}

// MustLoad функция для загрузки конфига. Завершает процесс,
// если файл конфигурации или обязательные значения отсутствуют.
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
	if cfg.MongoConnection.URI == "" {
		log.Fatal("mongo connection uri is not set")
	}
	if cfg.JWTSecretKey == "" {
		log.Fatal("jwt secret key is not set")
	}
	return &cfg
}

// IsProduction сообщает, работает ли приложение в боевом режиме.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
