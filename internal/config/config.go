package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	MatchmakingWait      time.Duration
	ForfeitWindow        time.Duration
	BotMoveDelay         time.Duration
	SessionMaxAge        time.Duration
	AllowedOrigins       []string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	KafkaBrokers         []string
	KafkaTopic           string
	KafkaGroupID         string
	StatsCacheTTL        time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// session lifecycle timings
	matchmakingWait := GetEnvAsDuration("MATCHMAKING_WAIT", 10*time.Second)
	forfeitWindow := GetEnvAsDuration("FORFEIT_WINDOW", 30*time.Second)
	botMoveDelay := GetEnvAsDuration("BOT_MOVE_DELAY", 600*time.Millisecond)
	sessionMaxAge := GetEnvAsDuration("SESSION_MAX_AGE", 24*time.Hour)

	allowedOrigins := splitCSV(GetEnv("ALLOWED_ORIGINS", ""))

	dbURL := GetEnv("DATABASE_URL", "")
	dbMaxOpenConns := GetEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	dbMaxIdleConns := GetEnvAsInt("DB_MAX_IDLE_CONNS", 25)
	dbConnMaxLifetimeMin := GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	kafkaBrokers := splitCSV(GetEnv("KAFKA_BROKERS", ""))
	kafkaTopic := GetEnv("KAFKA_TOPIC", "game-analytics")
	kafkaGroupID := GetEnv("KAFKA_GROUP_ID", "analytics-group")

	AppConfig = &Config{
		Port:                 port,
		MatchmakingWait:      matchmakingWait,
		ForfeitWindow:        forfeitWindow,
		BotMoveDelay:         botMoveDelay,
		SessionMaxAge:        sessionMaxAge,
		AllowedOrigins:       allowedOrigins,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       dbMaxOpenConns,
		DBMaxIdleConns:       dbMaxIdleConns,
		DBConnMaxLifetimeMin: dbConnMaxLifetimeMin,
		RedisURL:             GetEnv("REDIS_URL", ""),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:         kafkaBrokers,
		KafkaTopic:           kafkaTopic,
		KafkaGroupID:         kafkaGroupID,
		StatsCacheTTL:        GetEnvAsDuration("STATS_CACHE_TTL", 30*time.Second),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
