package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Empty disables the integration.
	RabbitURL string
	RedisAddr string

	RedisPassword string
	RedisDB       int

	JWTSecret         string
	AccessTokenTTLMin int

	RankingWindowDays int
	RankingLimit      int
	RankingCacheTTL   time.Duration

	Location *time.Location
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] failed to read .env: %v", err)
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "roomescape"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		RabbitURL:         os.Getenv("RABBITMQ_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		AccessTokenTTLMin: getEnvInt("ACCESS_TOKEN_TTL_MIN", 60),
		RankingWindowDays: getEnvInt("RANKING_WINDOW_DAYS", 7),
		RankingLimit:      getEnvInt("RANKING_LIMIT", 10),
		RankingCacheTTL:   getEnvDuration("RANKING_CACHE_TTL", 5*time.Minute),
		Location:          time.Local,
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("[Config] unknown TIMEZONE %q, using local: %v", tz, err)
		} else {
			cfg.Location = loc
		}
	}

	return cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] invalid int for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[Config] invalid duration for %s: %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
