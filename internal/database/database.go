package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"audora/config"
	"audora/internal/logger"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type CacheClient valkey.Client

type Cache struct {
	General CacheClient
	Session CacheClient
	User    CacheClient
}

type DB struct {
	SQL   *gorm.DB
	Cache Cache
	log   logger.Logger
}

func New(config config.Config) (DB, error) {
	log := logger.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log}

	if err := db.initializeDB(config); err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	if err := db.initializeCacheDB(config); err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func (s *DB) initializeDB(config config.Config) error {
	gormLogger := gormLogger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Silent,
			IgnoreRecordNotFoundError: true,
		},
	)

	gormConfig := &gorm.Config{
		Logger:                 gormLogger,
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	}

	return s.initializePostgresDB(gormConfig, config)
}

func (s *DB) initializePostgresDB(gormConfig *gorm.Config, config config.Config) error {
	log := s.log.Function("initializePostgresDB")

	if config.DatabaseHost == "" {
		return log.Error("database host is empty")
	}
	if config.DatabaseName == "" {
		return log.Error("database name is empty")
	}
	if config.DatabaseUser == "" {
		return log.Error("database user is empty")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseName,
	)

	log.Info(
		"Connecting to PostgreSQL",
		"host", config.DatabaseHost,
		"port", config.DatabasePort,
		"database", config.DatabaseName,
	)
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return log.Err("failed to open PostgreSQL database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping PostgreSQL database through GORM", err)
	}

	log.Info("Successfully connected to PostgreSQL with GORM")
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db

	return nil
}

// Valkey database index organization
const (
	GENERAL_CACHE_INDEX = iota
	SESSION_CACHE_INDEX
	USER_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.ErrMsg("failed to initialize cache database: address or port is empty")
	}

	var cacheDB Cache

	var err error
	cacheDB.General, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    GENERAL_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Session, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    SESSION_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create session valkey client", err)
	}

	cacheDB.User, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    USER_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create user valkey client", err)
	}

	s.Cache = cacheDB

	return nil
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, dbErr := s.SQL.DB()
		if dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				err = s.log.Err("failed to close database", closeErr)
			}
		}
	}

	if s.Cache.General != nil {
		s.Cache.General.Close()
	}

	if s.Cache.Session != nil {
		s.Cache.Session.Close()
	}

	if s.Cache.User != nil {
		s.Cache.User.Close()
	}

	return err
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}

func (s *DB) FlushAllCaches() error {
	log := s.log.Function("FlushAllCaches")
	log.Info("Flushing all cache databases")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cacheClients := []struct {
		client CacheClient
		name   string
	}{
		{s.Cache.General, "General"},
		{s.Cache.Session, "Session"},
		{s.Cache.User, "User"},
	}

	for _, cache := range cacheClients {
		if cache.client != nil {
			if err := cache.client.Do(ctx, cache.client.B().Flushdb().Build()).Error(); err != nil {
				log.Er("Failed to flush cache database", err, "cache", cache.name)
				return err
			}
			log.Info("Successfully flushed cache database", "cache", cache.name)
		}
	}

	return nil
}
