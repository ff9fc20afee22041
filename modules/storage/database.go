package storage

import (
	"fmt"
	"time"

	"github.com/example/product-manager/config"
	"github.com/example/product-manager/domain/product"
	"github.com/example/product-manager/domain/user"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config describes the relational store connection.
type Config struct {
	Driver string
	DSN    string
	Debug  bool
}

// Open connects to the configured database.
// Unique-constraint violations are translated to gorm.ErrDuplicatedKey.
func Open(cfg Config, sqlLog *logrus.Logger) (*gorm.DB, error) {
	dialector, err := newDialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(sqlLog, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer, and every connection to ":memory:"
	// is a separate database.
	if cfg.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the Users and Products tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.User{}, &product.Product{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func newDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewSQLLogger returns the logrus logger GORM writes SQL traces to.
// GORM calls Printf, which logrus emits at info level, so verbosity is
// controlled by the GORM log level rather than here.
func NewSQLLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}
