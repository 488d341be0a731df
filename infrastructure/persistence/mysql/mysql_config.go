package mysql

import (
	"context"
	"fmt"
	"time"

	"biblio/config"
	"biblio/infrastructure/persistence/mysql/po"
	"biblio/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 10
	DefaultConnMaxLifetime = 10 * time.Minute
)

// Options carries the connection settings for the MySQL store.
type Options struct {
	Host            string
	Port            string
	Username        string
	Password        string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// OptionsFromConfig maps the application database configuration onto
// connection options.
func OptionsFromConfig(cfg config.DatabaseConfig) Options {
	return Options{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Username:        cfg.Username,
		Password:        cfg.Password,
		Database:        cfg.Database,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		LogLevel:        cfg.LogLevel,
	}
}

func (o *Options) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&collation=utf8mb4_unicode_ci&readTimeout=10s&writeTimeout=10s",
		o.Username, o.Password, o.Host, o.Port, o.Database)
}

func (o *Options) parseLogLevel() gormlogger.LogLevel {
	switch o.LogLevel {
	case "debug", "info":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

func (o *Options) applyDefaults() {
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = DefaultMaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = DefaultMaxIdleConns
	}
	if o.MaxIdleConns > o.MaxOpenConns {
		o.MaxIdleConns = o.MaxOpenConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = DefaultConnMaxLifetime
	}
}

// Connect opens the database with the pool settings applied and SQL
// logging routed through the zap adapter.
func (o *Options) Connect() (*gorm.DB, error) {
	o.applyDefaults()
	gormConfig := &gorm.Config{
		Logger: logger.NewGormLoggerAdapter(o.parseLogLevel()),
	}

	db, err := gorm.Open(mysql.Open(o.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(o.ConnMaxLifetime)

	logger.Info("Database connected",
		zap.String("host", o.Host),
		zap.String("database", o.Database),
		zap.Int("max_open_conns", o.MaxOpenConns),
		zap.Int("max_idle_conns", o.MaxIdleConns),
		zap.Duration("conn_max_lifetime", o.ConnMaxLifetime),
	)

	return db, nil
}

// Migrate creates or updates the members, books and loans tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&po.MemberPO{}, &po.BookPO{}, &po.LoanPO{})
}

// Ping verifies connectivity on an existing handle.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
