package db

import (
	"context"
	"fmt"
	"time"

	"assetdb/internal/logs"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options для пула и логирования SQL.
type Options struct {
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     string
}

// Open подключает БД по driver/dsn.
// Поддержка: "mysql" | "postgres" | "sqlite".
func Open(driver, dsn string, opts Options) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: newLogger(opts.LogLevel)}

	var (
		d   *gorm.DB
		err error
	)
	switch driver {
	case "mysql":
		// Пример DSN:
		// user:pass@tcp(127.0.0.1:3306)/assets?parseTime=true&charset=utf8mb4&clientFoundRows=true
		d, err = gorm.Open(mysql.Open(dsn), gcfg)
	case "postgres":
		// host=localhost port=5432 user=assets password=... dbname=assets sslmode=disable
		d, err = gorm.Open(postgres.Open(dsn), gcfg)
	case "sqlite":
		// file:/var/lib/assetdb/assets.db?_foreign_keys=on&_busy_timeout=5000
		d, err = gorm.Open(sqlite.Open(dsn), gcfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return d, nil
}

// RetryDelay — пауза перед единственной повторной попыткой подключения.
var RetryDelay = 2 * time.Second

// Connect opens the pool and pings it. A failed attempt is retried once after RetryDelay.
func Connect(ctx context.Context, driver, dsn string, opts Options) (*gorm.DB, error) {
	d, err := connectOnce(ctx, driver, dsn, opts)
	if err == nil {
		logs.Logger.Infof("database connected (%s)", driver)
		return d, nil
	}

	logs.Logger.Warnf("database connect failed: %v; retrying in %s", err, RetryDelay)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(RetryDelay):
	}
	if d, err = connectOnce(ctx, driver, dsn, opts); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	logs.Logger.Infof("database connected (%s) after retry", driver)
	return d, nil
}

// драйверы mysql/sqlite ходят в БД уже при gorm.Open, поэтому повторяем целиком
func connectOnce(ctx context.Context, driver, dsn string, opts Options) (*gorm.DB, error) {
	d, err := Open(driver, dsn, opts)
	if err != nil {
		return nil, err
	}
	if err := Ping(ctx, d); err != nil {
		_ = Close(d)
		return nil, err
	}
	return d, nil
}

func Ping(ctx context.Context, d *gorm.DB) error {
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(pctx)
}

func Close(d *gorm.DB) error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newLogger пишет SQL-логи gorm через logrus.
func newLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "debug":
		lvl = logger.Info
	case "error":
		lvl = logger.Error
	}
	return logger.New(logs.Logger, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
