package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PortalURL         string
	ResultRowSelector string
	LoggedInSelector  string
	Headless          bool
	ChromeBin         string

	LoginWaitSec   int
	ResultsWaitSec int
	PollIntervalMs int
	MaxRetries     int
	SampleSize     int

	CSVOutputPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PortalURL:         getEnv("MATRIX_URL", "https://sef.mlsmatrix.com/Matrix/Login.aspx"),
		ResultRowSelector: getEnv("RESULT_ROW_SELECTOR", "tr[class*='searchResultRow']"),
		LoggedInSelector:  getEnv("LOGGED_IN_SELECTOR", "a[href*='Logout']"),
		Headless:          getEnvBool("HEADLESS", false),
		ChromeBin:         getEnv("CHROME_BIN", ""),

		LoginWaitSec:   getEnvInt("LOGIN_WAIT_SEC", 300),
		ResultsWaitSec: getEnvInt("RESULTS_WAIT_SEC", 300),
		PollIntervalMs: getEnvInt("POLL_INTERVAL_MS", 2000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		SampleSize:     getEnvInt("SAMPLE_SIZE", 3),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/raw_listings.csv"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "mls_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
