package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Queue    QueueConfig
}

type HTTPConfig struct {
	Addr string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type QueueConfig struct {
	// Backend is "memory" or "redis". The redis backend keeps undelivered
	// notifications across restarts.
	Backend string
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		HTTP:     GetHTTPConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Auth:     GetAuthConfig(),
		Queue:    GetQueueConfig(),
	}

	return AppConfig
}

// LoadTestConfig points at the side-by-side test containers (postgres on
// 5433, redis on 6380) so integration tests never touch the dev instances.
func LoadTestConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{Addr: ":0"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5433",
			User:     "postgres",
			Password: "postgres",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     "6380",
			Password: "",
			DB:       1,
		},
		Auth:  AuthConfig{JWTSecret: "test-secret"},
		Queue: QueueConfig{Backend: "memory"},
	}
}

func GetHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Addr: getEnv("HTTP_ADDR", ":8080"),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetQueueConfig() QueueConfig {
	return QueueConfig{
		Backend: getEnv("QUEUE_BACKEND", "memory"),
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
