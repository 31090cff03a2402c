package cmd

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret        string
	WSAllowedOrigins []string
	PaymentBaseURL   string

	// Optional: the settings cache is skipped when RedisAddr is empty.
	RedisAddr        string
	SettingsCacheTTL time.Duration

	// Optional: order events are not published to Kafka when KafkaHost is empty.
	KafkaHost              string
	KafkaOrderChangedTopic string

	GuestOrderTTL        time.Duration
	GuestExpirySchedule  string
	GuestExpiryBatchSize int
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KafkaHost on commas.
func (c Config) KafkaBrokers() []string {
	return splitList(c.KafkaHost)
}

// ParseOrigins splits a comma separated origin list, dropping blanks.
func ParseOrigins(raw string) []string {
	return splitList(raw)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
