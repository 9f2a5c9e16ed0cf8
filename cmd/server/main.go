package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"vehicle-rental/internal/config"
	"vehicle-rental/internal/handlers"
	"vehicle-rental/internal/middleware"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/repositories/memory"
	"vehicle-rental/internal/repositories/mongodb"
	"vehicle-rental/internal/repositories/postgres"
	"vehicle-rental/internal/services"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/cache"
	"vehicle-rental/pkg/database"
	"vehicle-rental/pkg/logger"
	"vehicle-rental/pkg/payment"
	"vehicle-rental/pkg/push"
	"vehicle-rental/pkg/storage"
	"vehicle-rental/pkg/websocket"
	"vehicle-rental/routes"
)

// closer releases a resource opened during startup.
type closer func(ctx context.Context) error

func main() {
	rollback := flag.Int("mongo-rollback", -1, "revert MongoDB index migrations down to this version and exit")
	flag.Parse()

	// Missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Caller:  cfg.Log.Caller,
		AppName: cfg.App.Name,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var closers []closer

	store, storeClosers, err := openStore(ctx, cfg, appLogger, *rollback)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to open store")
	}
	closers = append(closers, storeClosers...)
	if *rollback >= 0 {
		shutdown(closers, appLogger)
		return
	}

	checks := map[string]handlers.Pinger{"store": store}

	// A nil interface disables caching and event publishing.
	var cacheService services.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(ctx, &cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to Redis")
		}
		cacheService = redisCache
		checks["redis"] = redisCache
		closers = append(closers, func(context.Context) error { return redisCache.Close() })
	}

	paymentProvider, err := newPaymentProvider(cfg.Payment)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to configure payment provider")
	}

	fileStorage, storageCloser, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to configure file storage")
	}
	if storageCloser != nil {
		closers = append(closers, storageCloser)
	}

	var pushProvider push.PushProvider
	if cfg.Push.Enabled {
		fcm, err := push.NewFCMProvider(ctx, cfg.Push.FCM.ProjectID, cfg.Push.FCM.Credentials)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize FCM")
		}
		pushProvider = fcm
	}

	hub := websocket.NewHub(appLogger)
	go hub.Run(ctx)

	authService := services.NewAuthService(store.Users(), services.AuthOptions{
		Tokens: utils.TokenSettings{
			Secret:     cfg.Security.JWTSecret,
			AccessTTL:  cfg.Security.JWTAccessTokenTTL,
			RefreshTTL: cfg.Security.JWTRefreshTokenTTL,
		},
		BcryptCost:        cfg.Security.BcryptCost,
		PasswordMinLength: cfg.Security.PasswordMinLength,
	}, appLogger)
	notificationService := services.NewNotificationService(hub, cacheService, pushProvider, cfg.Push.FCM.TopicPrefix, appLogger)
	vehicleService := services.NewVehicleService(store, cacheService, fileStorage, services.VehicleServiceOptions{
		CacheTTL:      cfg.Redis.CacheTTL,
		MaxImageWidth: cfg.Storage.MaxImageWidth,
	}, appLogger)
	bookingService := services.NewBookingService(store, notificationService, cacheService, appLogger)
	walletService := services.NewWalletService(store, paymentProvider, cfg.Payment.Currency, appLogger)
	reviewService := services.NewReviewService(store, appLogger)
	dashboardService := services.NewDashboardService(store, appLogger)

	h := &routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, appLogger),
		Vehicle:   handlers.NewVehicleHandler(vehicleService, appLogger),
		Booking:   handlers.NewBookingHandler(bookingService, appLogger),
		Wallet:    handlers.NewWalletHandler(walletService, appLogger),
		Review:    handlers.NewReviewHandler(reviewService, appLogger),
		Dashboard: handlers.NewDashboardHandler(dashboardService, appLogger),
		Health:    handlers.NewHealthHandler(cfg.App.Version, checks, appLogger),
		WebSocket: websocket.NewHandler(hub, websocket.Options{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			PingInterval:    cfg.WebSocket.PingInterval,
			PongTimeout:     cfg.WebSocket.PongTimeout,
			WriteTimeout:    cfg.WebSocket.WriteTimeout,
			MaxMessageSize:  cfg.WebSocket.MaxMessageSize,
			AllowedOrigins:  cfg.WebSocket.AllowedOrigins,
		}, appLogger),
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		appLogger.WithError(err).Warn("Invalid trusted proxies, ignoring")
	}
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.MaxMultipartMemory = cfg.Storage.MaxUploadSize

	if cfg.Storage.Provider == storage.ProviderLocal {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	routes.Setup(router, h, authService)

	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(map[string]interface{}{
			"address": server.Addr,
			"driver":  cfg.Database.Driver,
			"payment": paymentProvider.Name(),
			"storage": cfg.Storage.Provider,
			"redis":   cfg.Redis.Enabled,
			"push":    cfg.Push.Enabled,
			"env":     cfg.App.Environment,
			"version": cfg.App.Version,
		}).Info("Starting server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Error("Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	shutdown(closers, appLogger)
	appLogger.Info("Server exited")
}

// openStore connects the configured backend and prepares its schema. With rollback >= 0 the
// MongoDB index migrations are reverted instead.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger, rollback int) (interfaces.Store, []closer, error) {
	switch cfg.Database.Driver {
	case config.DriverMongoDB:
		mongoCfg := cfg.Database.MongoDB
		db, err := database.NewMongoDB(&database.MongoConfig{
			URI:            mongoCfg.URI,
			Database:       mongoCfg.Database,
			MaxPoolSize:    mongoCfg.MaxPoolSize,
			MinPoolSize:    mongoCfg.MinPoolSize,
			ConnectTimeout: mongoCfg.ConnectTimeout,
			SocketTimeout:  mongoCfg.SocketTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongodb: %w", err)
		}
		closers := []closer{db.Close}

		migrator := database.NewMigrator(db.Database, log)
		if rollback >= 0 {
			err = migrator.Down(ctx, rollback)
		} else {
			err = migrator.Up(ctx)
		}
		if err != nil {
			return nil, closers, fmt.Errorf("migrate mongodb: %w", err)
		}
		return mongodb.NewStore(db), closers, nil

	case config.DriverPostgres:
		if rollback >= 0 {
			return nil, nil, errors.New("rollback is only supported for mongodb")
		}
		pgCfg := cfg.Database.Postgres
		pg, err := database.NewPostgres(&database.PostgresConfig{
			DSN:             pgCfg.DSN(),
			MaxOpenConns:    pgCfg.MaxOpenConns,
			MaxIdleConns:    pgCfg.MaxIdleConns,
			ConnMaxLifetime: pgCfg.ConnMaxLifetime,
			LogQueries:      cfg.App.Debug,
		})
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewStore(pg)
		closers := []closer{store.Close}
		if pgCfg.AutoMigrate {
			if err := store.Migrate(); err != nil {
				return nil, closers, fmt.Errorf("migrate postgres: %w", err)
			}
		}
		return store, closers, nil

	default:
		if rollback >= 0 {
			return nil, nil, errors.New("rollback is only supported for mongodb")
		}
		log.Warn("Using in-memory store, data is lost on restart")
		return memory.NewStore(), nil, nil
	}
}

func newPaymentProvider(cfg *config.PaymentConfig) (payment.Provider, error) {
	switch cfg.DefaultProvider {
	case config.PaymentProviderStripe:
		if cfg.Stripe.SecretKey == "" {
			return nil, errors.New("STRIPE_SECRET_KEY is required for the stripe provider")
		}
		return payment.NewStripeProvider(cfg.Stripe.SecretKey), nil
	case config.PaymentProviderRazorpay:
		if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
			return nil, errors.New("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required for the razorpay provider")
		}
		return payment.NewRazorpayProvider(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret), nil
	default:
		return payment.NewMockProvider(), nil
	}
}

func newStorage(ctx context.Context, cfg *config.StorageConfig) (storage.StorageProvider, closer, error) {
	switch cfg.Provider {
	case storage.ProviderAWS:
		s3, err := storage.NewAWSS3Storage(ctx, cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, cfg.AWS.CDNDomain)
		return s3, nil, err
	case storage.ProviderGCP:
		gcs, err := storage.NewGCPStorage(ctx, cfg.GCP.Bucket, cfg.GCP.CredentialsFile, cfg.GCP.CDNDomain)
		if err != nil {
			return nil, nil, err
		}
		return gcs, func(context.Context) error { return gcs.Close() }, nil
	default:
		local, err := storage.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
		return local, nil, err
	}
}

func shutdown(closers []closer, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var result *multierror.Error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		log.WithError(err).Error("Failed to release resources")
	}
}
