// Package server assembles one of the record store apps from configuration.
package server

import (
	"context" // Redis ping and document loading
	"fmt"     // Error wrapping
	"path"    // Document namespacing

	"record_store/internal/api"     // Route tables
	"record_store/internal/auth"    // Credentials, tokens, revocation
	"record_store/internal/cache"   // Catalog read-through cache
	"record_store/internal/catalog" // Keyed catalogs
	"record_store/internal/config"  // Configuration
	"record_store/internal/domain"  // Domain models
	"record_store/internal/records" // Per-owner records
	"record_store/internal/service" // App services
	"record_store/internal/storage" // Document backends

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps are the process-wide resources an app is built from
type Deps struct {
	Backend storage.Backend     // Where documents live
	Redis   *redis.Client       // Optional; enables the catalog cache and shared revocation
	Hasher  auth.PasswordHasher // Optional; defaults to the configured scheme
}

// SetupLogger applies LOG_LEVEL and the production formatter
func SetupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// NewRedisClient connects to REDIS_ADDR, or returns nil when it is unset
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// OpenDB connects to MySQL through GORM
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// NewBackend builds the document backend selected by STORAGE_DRIVER
func NewBackend(ctx context.Context, cfg *config.Config, rdb *redis.Client) (storage.Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		return storage.NewFileBackend(cfg.DataDir), nil
	case config.DriverMySQL:
		db, err := OpenDB(cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewGormBackend(db), nil
	case config.DriverRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis storage driver needs REDIS_ADDR")
		}
		return storage.NewRedisBackend(rdb, cfg.RedisPrefix), nil
	case config.DriverS3:
		backend, err := storage.NewS3Backend(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("configure s3: %w", err)
		}
		return backend, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// New builds the gin engine for cfg.App
func New(ctx context.Context, cfg *config.Config, deps Deps) (*gin.Engine, error) {
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewHasher(cfg.PasswordScheme)
	}
	var revoker auth.Revoker = auth.NewMemoryRevoker()
	if deps.Redis != nil {
		revoker = auth.NewRedisRevoker(deps.Redis, cfg.RedisPrefix)
	}
	catalogCache := cache.New(deps.Redis) // nil-safe when Redis is absent

	usersDoc := "users"
	if cfg.App == config.AppPortal {
		usersDoc = "students"
	}
	users, err := storage.Open[auth.Users](ctx, deps.Backend, path.Join(cfg.App, usersDoc))
	if err != nil {
		return nil, err
	}
	creds := auth.NewCredentialStore(users, hasher)
	authn := auth.NewAuthenticator(creds, auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), revoker)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default() // Gin router instance
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	switch cfg.App {
	case config.AppNotes:
		notes, err := openRecords[domain.Note](ctx, deps.Backend, cfg.App, "notes", "Note")
		if err != nil {
			return nil, err
		}
		api.NotesRoutes(r, authn, service.NewNotes(notes))
	case config.AppShop:
		products, err := openCatalog[domain.Product](ctx, deps.Backend, catalogCache, cfg.App, "products", "Product")
		if err != nil {
			return nil, err
		}
		carts, err := openRecords[domain.CartLine](ctx, deps.Backend, cfg.App, "cart", "Cart item")
		if err != nil {
			return nil, err
		}
		api.ShopRoutes(r, authn, service.NewShop(products, carts), cfg.AdminRole)
	case config.AppJobs:
		listings, err := openCatalog[domain.JobListing](ctx, deps.Backend, catalogCache, cfg.App, "job_listings", "Job listing")
		if err != nil {
			return nil, err
		}
		apps, err := openRecords[domain.Application](ctx, deps.Backend, cfg.App, "applications", "Application")
		if err != nil {
			return nil, err
		}
		api.JobsRoutes(r, authn, service.NewJobs(listings, apps), cfg.AdminRole)
	case config.AppPortal:
		api.PortalRoutes(r, authn, service.NewPortal(creds))
	default:
		return nil, fmt.Errorf("unknown app %q", cfg.App)
	}
	return r, nil
}

func openRecords[T records.Record](ctx context.Context, b storage.Backend, app, name, resource string) (*records.Store[T], error) {
	doc, err := storage.Open[records.Owned[T]](ctx, b, path.Join(app, name))
	if err != nil {
		return nil, err
	}
	return records.NewStore(doc, resource), nil
}

func openCatalog[T any](ctx context.Context, b storage.Backend, c *cache.Cache, app, name, resource string) (*catalog.Catalog[T], error) {
	doc, err := storage.Open[catalog.Entries[T]](ctx, b, path.Join(app, name))
	if err != nil {
		return nil, err
	}
	return catalog.New(doc, c, resource), nil
}
