package config

import (
	"errors"  // Validation errors
	"fmt"     // Error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // Token lifetime parsing

	"github.com/joho/godotenv" // For loading .env files
)

// Supported applications
const (
	AppNotes  = "notes"  // Notes service
	AppShop   = "shop"   // Shopping cart service
	AppJobs   = "jobs"   // Job application tracker
	AppPortal = "portal" // Student portal
)

// Supported storage drivers
const (
	DriverFile  = "file"  // JSON documents on disk
	DriverMySQL = "mysql" // documents table via GORM
	DriverRedis = "redis" // one Redis key per document
	DriverS3    = "s3"    // one object per document
)

// Supported password hashing schemes
const (
	SchemeArgon2id = "argon2id"
	SchemeBcrypt   = "bcrypt"
)

// Config holds the application configuration
type Config struct {
	App            string        // Which application this process serves
	AppPort        string        // Application port
	DataDir        string        // Root directory for the file driver
	StorageDriver  string        // Storage backend driver
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	JWTSecret      string        // JWT secret key
	TokenTTL       time.Duration // Access token lifetime
	PasswordScheme string        // Password hashing scheme for new hashes
	AdminRole      string        // Role allowed to manage catalogs
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	RedisPrefix    string        // Key prefix for the redis driver
	S3Bucket       string        // Bucket for the s3 driver
	S3Region       string        // Region for the s3 driver
	S3Endpoint     string        // Base endpoint (MinIO and friends)
	S3AccessKey    string        // Static access key
	S3SecretKey    string        // Static secret key
	S3Prefix       string        // Object key prefix
	LogLevel       string        // logrus level name
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "15m"))
	if err != nil {
		ttl = 0 // Rejected by Validate
	}
	return &Config{
		App:            os.Getenv("APP"),                             // Application name
		AppPort:        getEnv("APP_PORT", "8000"),                   // Application port
		DataDir:        getEnv("DATA_DIR", "data"),                   // Data directory
		StorageDriver:  getEnv("STORAGE_DRIVER", DriverFile),         // Storage driver
		DBUser:         os.Getenv("DB_USER"),                         // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                     // Database password
		DBHost:         getEnv("DB_HOST", "127.0.0.1"),               // Database host
		DBPort:         getEnv("DB_PORT", "3306"),                    // Database port
		DBName:         os.Getenv("DB_NAME"),                         // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),                      // JWT secret key
		TokenTTL:       ttl,                                          // Token lifetime
		PasswordScheme: getEnv("PASSWORD_SCHEME", SchemeArgon2id),    // Password scheme
		AdminRole:      getEnv("ADMIN_ROLE", "admin"),                // Privileged role
		RedisAddr:      os.Getenv("REDIS_ADDR"),                      // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                      // Redis password
		RedisDB:        redisDB,                                      // Redis database number
		RedisPrefix:    getEnv("REDIS_PREFIX", "recordstore:"),       // Redis key prefix
		S3Bucket:       os.Getenv("S3_BUCKET"),                       // S3 bucket
		S3Region:       getEnv("S3_REGION", "us-east-1"),             // S3 region
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),                     // S3 endpoint
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),                   // S3 access key
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),                   // S3 secret key
		S3Prefix:       os.Getenv("S3_PREFIX"),                       // S3 key prefix
		LogLevel:       getEnv("LOG_LEVEL", "info"),                  // Log level
		IsProd:         os.Getenv("IS_PROD") == "true",               // Is production environment
	}
}

// DSN builds the MySQL Data Source Name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// Validate reports the first configuration problem that would make the server unusable
func (c *Config) Validate() error {
	switch c.App {
	case AppNotes, AppShop, AppJobs, AppPortal:
	default:
		return fmt.Errorf("unknown APP %q (want notes, shop, jobs or portal)", c.App)
	}
	switch c.StorageDriver {
	case DriverFile, DriverMySQL, DriverRedis:
	case DriverS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageDriver == DriverRedis && c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required for the redis storage driver")
	}
	if c.PasswordScheme != SchemeArgon2id && c.PasswordScheme != SchemeBcrypt {
		return fmt.Errorf("unknown PASSWORD_SCHEME %q", c.PasswordScheme)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be a positive duration")
	}
	return nil
}

// getEnv returns the environment value for key, or fallback when unset
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
