// Package app builds the object graph shared by the CLI and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/config"
	"github.com/fekuna/omnipos-inventory/internal/category"
	catH "github.com/fekuna/omnipos-inventory/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-inventory/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-inventory/internal/category/usecase"
	"github.com/fekuna/omnipos-inventory/internal/product"
	prodH "github.com/fekuna/omnipos-inventory/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-inventory/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-inventory/internal/product/usecase"
	"github.com/fekuna/omnipos-inventory/internal/purchase"
	purH "github.com/fekuna/omnipos-inventory/internal/purchase/handler"
	purListenerPkg "github.com/fekuna/omnipos-inventory/internal/purchase/listener"
	purRepoPkg "github.com/fekuna/omnipos-inventory/internal/purchase/repository"
	purUCPkg "github.com/fekuna/omnipos-inventory/internal/purchase/usecase"
	"github.com/fekuna/omnipos-inventory/internal/report"
	repDto "github.com/fekuna/omnipos-inventory/internal/report/dto"
	repH "github.com/fekuna/omnipos-inventory/internal/report/handler"
	repRepoPkg "github.com/fekuna/omnipos-inventory/internal/report/repository"
	repUCPkg "github.com/fekuna/omnipos-inventory/internal/report/usecase"
	"github.com/fekuna/omnipos-inventory/internal/server"
	"github.com/fekuna/omnipos-inventory/pkg/broker"
	"github.com/fekuna/omnipos-inventory/pkg/database"
	"github.com/fekuna/omnipos-inventory/pkg/lock"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

type App struct {
	Config *config.Config
	Logger logger.ZapLogger
	DB     *sqlx.DB

	Categories category.UseCase
	Products   product.UseCase
	Purchases  purchase.UseCase
	Reports    report.UseCase

	redisClient *redis.Client
	producer    *broker.KafkaProducer
	consumer    *broker.KafkaConsumer
}

// NewLogger derives the zap configuration from the environment the way the
// service always has: development gets a debug console logger.
func NewLogger(cfg *config.Config) logger.ZapLogger {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}
	return logger.NewZapLogger(logConfig)
}

// OpenDB connects to the configured backend without touching the schema.
func OpenDB(cfg *config.Config) (*sqlx.DB, error) {
	return database.Open(&database.Config{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.SQLitePath,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second,
	})
}

// New opens the database, applies migrations and wires every use case.
// Redis and Kafka are optional and only connected when configured.
func New(cfg *config.Config, log logger.ZapLogger) (*App, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("database ready", zap.String("driver", db.DriverName()))

	a := &App{Config: cfg, Logger: log, DB: db}
	if err := a.wire(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire() error {
	cfg := a.Config
	trManager := manager.Must(trmsqlx.NewDefaultFactory(a.DB))

	catRepo := catRepoPkg.NewSQLRepository(a.DB)
	prodRepo := prodRepoPkg.NewSQLRepository(a.DB)
	purRepo := purRepoPkg.NewSQLRepository(a.DB)
	repRepo := repRepoPkg.NewSQLRepository(a.DB)

	var locker lock.Locker = lock.NewMemoryLocker()
	if cfg.Redis.Addr != "" {
		a.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		locker = lock.NewRedisLocker(a.redisClient, lock.RedisConfig{TTL: cfg.Redis.LockTTL})
		a.Logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	var opts []purUCPkg.Option
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.EventsTopic != "" {
		a.producer = broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
		})
		opts = append(opts, purUCPkg.WithPublisher(a.producer))
		a.Logger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.EventsTopic))
	}

	a.Categories = catUCPkg.NewCategoryUseCase(catRepo, prodRepo, trManager, a.Logger)
	a.Products = prodUCPkg.NewProductUseCase(prodRepo, a.Categories, a.Logger)
	a.Purchases = purUCPkg.NewPurchaseUseCase(purRepo, a.Products, trManager, locker, a.Logger, opts...)
	a.Reports = repUCPkg.NewReportUseCase(repRepo, repDto.Settings{
		LowStockThreshold: cfg.Report.LowStockThreshold,
		SalesWindowDays:   cfg.Report.SalesWindowDays,
	}, a.Logger)
	return nil
}

// Handler is the HTTP API over the wired use cases.
func (a *App) Handler() http.Handler {
	return server.NewRouter(a.DB, a.Logger,
		catH.NewCategoryHandler(a.Categories, a.Logger),
		prodH.NewProductHandler(a.Products, a.Logger),
		purH.NewPurchaseHandler(a.Purchases, a.Logger),
		repH.NewReportHandler(a.Reports, a.Logger),
	)
}

// StartListener consumes purchase requests from Kafka until ctx is done. It
// reports false when no brokers are configured.
func (a *App) StartListener(ctx context.Context) bool {
	cfg := a.Config.Kafka
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return false
	}
	a.consumer = broker.NewConsumer(&broker.Config{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
	a.Logger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))

	l := purListenerPkg.NewPurchaseListener(a.consumer, a.Purchases, a.Logger)
	go l.Start(ctx)
	return true
}

func (a *App) Close() error {
	var errs []error
	if a.consumer != nil {
		errs = append(errs, a.consumer.Close())
	}
	if a.producer != nil {
		errs = append(errs, a.producer.Close())
	}
	if a.redisClient != nil {
		errs = append(errs, a.redisClient.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
