package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// HTTP server configuration
	ServerPort int

	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// Report cache TTL in seconds (0 disables caching even when Redis is up)
	CacheTTLSeconds int

	// Analytics configuration
	Analytics AnalyticsConfig
}

// AnalyticsConfig holds business thresholds and rate constants used by the
// report derivers and the recommendation rule engine.
type AnalyticsConfig struct {
	// Risk tiers (percent, inclusive at the lower bound)
	HighRiskThreshold   float64
	MediumRiskThreshold float64

	// Drop severity (percent, strictly greater-than)
	SevereDropThreshold   float64
	ModerateDropThreshold float64

	// Load rule
	HighTrafficThreshold    int
	ShiftImbalanceThreshold float64 // Percent spread between busiest and quietest shift

	// Basket health rule (negative percent vs weekly average)
	BasketDropThreshold float64

	// Revenue model constants
	PreventableFraction float64 // Share of at-risk revenue a campaign can realistically save
	ProfitMargin        float64 // Gross margin applied to monthly revenue for CLV impact
	RetentionCostRate   float64 // Campaign cost as a share of daily sales

	// Recommendation list cap
	MaxRecommendations int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvInt("SERVER_PORT", 8090),

		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "churn_metrics"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "churn"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", "churn123"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		CacheTTLSeconds: getEnvInt("REPORT_CACHE_TTL", 60),

		// Analytics configuration
		Analytics: AnalyticsConfig{
			HighRiskThreshold:   getEnvFloat("ANALYTICS_HIGH_RISK", 67.0),
			MediumRiskThreshold: getEnvFloat("ANALYTICS_MEDIUM_RISK", 34.0),

			SevereDropThreshold:   getEnvFloat("ANALYTICS_SEVERE_DROP", 8.0),
			ModerateDropThreshold: getEnvFloat("ANALYTICS_MODERATE_DROP", 5.0),

			HighTrafficThreshold:    getEnvInt("ANALYTICS_HIGH_TRAFFIC", 300),
			ShiftImbalanceThreshold: getEnvFloat("ANALYTICS_SHIFT_IMBALANCE", 35.0),

			BasketDropThreshold: getEnvFloat("ANALYTICS_BASKET_DROP", -5.0),

			PreventableFraction: getEnvFloat("ANALYTICS_PREVENTABLE_FRACTION", 0.30),
			ProfitMargin:        getEnvFloat("ANALYTICS_PROFIT_MARGIN", 0.25),
			RetentionCostRate:   getEnvFloat("ANALYTICS_RETENTION_COST_RATE", 0.03),

			MaxRecommendations: getEnvInt("ANALYTICS_MAX_RECOMMENDATIONS", 6),
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat gets environment variable as float64 or returns default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var floatValue float64
	if _, err := fmt.Sscanf(value, "%f", &floatValue); err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
