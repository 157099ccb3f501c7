// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RateLimit               `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"720h"`
}

// RateLimit параметры скользящего окна для ограничения запросов:
// не более Requests запросов на клиента за Window.
type RateLimit struct {
	Requests int           `yaml:"requests" env-default:"25"`
	Window   time.Duration `yaml:"window" env-default:"100s"`
}

// MustLoad функция для загрузки конфига, завершает процесс при любой ошибке.
//
// Отсутствие секретного ключа подписи токенов — ошибка конфигурации:
// сервис обязан упасть на старте, а не молча подставить значение по умолчанию.
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
	if cfg.JWTSecretKey == "" {
		log.Fatal("jwt_secret_key is not set: refusing to start without a signing secret")
	}
	return &cfg
}
