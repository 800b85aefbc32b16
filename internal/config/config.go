package config

import (
	"os"            // For environment variables
	"path/filepath" // For building the credential directory path
	"strconv"       // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Database drivers understood by db.Open
const (
	DriverSQLite = "sqlite" // Embedded sqlite file (default)
	DriverMySQL  = "mysql"  // External MySQL server
)

// Config holds the ledger server configuration
type Config struct {
	AppPort    string // Application port
	DBDriver   string // Database driver: sqlite or mysql
	SQLitePath string // Path of the sqlite database file
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	AdminKey   string // Shared secret for administrative credit grants
	JWTSecret  string // Secret used to sign admin bearer tokens
	RedisAddr  string // Redis server address, empty disables caching
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getenv("APP_PORT", "5000"),                     // Application port
		DBDriver:   getenv("DB_DRIVER", DriverSQLite),              // Database driver
		SQLitePath: getenv("SQLITE_PATH", "literary_voice.db"),     // sqlite file
		DBUser:     os.Getenv("DB_USER"),                           // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),                       // Database password
		DBHost:     getenv("DB_HOST", "127.0.0.1"),                 // Database host
		DBPort:     getenv("DB_PORT", "3306"),                      // Database port
		DBName:     os.Getenv("DB_NAME"),                           // Database name
		AdminKey:   getenv("ADMIN_KEY", "change_me_in_production"), // Admin secret
		JWTSecret:  os.Getenv("JWT_SECRET"),                        // JWT secret key
		RedisAddr:  os.Getenv("REDIS_ADDR"),                        // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                        // Redis password
		RedisDB:    redisDB,                                        // Redis database number
		IsProd:     os.Getenv("IS_PROD") == "true",                 // Is production environment
	}
}

// ClientConfig holds the CLI configuration
type ClientConfig struct {
	APIBaseURL     string // Base URL of the ledger service
	CatalogBaseURL string // Base URL of the scraped book catalog
	ConfigDir      string // Directory holding the stored credential
}

// LoadClientConfig loads the CLI configuration from environment variables
func LoadClientConfig() *ClientConfig {
	_ = godotenv.Load() // Load .env file if present
	dir := os.Getenv("LITERARY_VOICE_CONFIG_DIR")
	if dir == "" {
		// Fall back to ~/.literary-voice, or the working directory without a home
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".literary-voice")
	}
	return &ClientConfig{
		APIBaseURL:     getenv("LITERARY_VOICE_API_URL", "http://localhost:5000"),         // Ledger service
		CatalogBaseURL: getenv("LITERARY_VOICE_CATALOG_URL", "https://www.goodreads.com"), // Catalog site
		ConfigDir:      dir,                                                              // Credential directory
	}
}

// getenv returns the environment value for key or def when unset
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
