package config

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultJWTSecret = "your-super-secret-jwt-key-change-in-production"

type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Address    string
	HTTPPort   string
	CORSOrigin string
	UIDir      string
}

type DatabaseConfig struct {
	Driver       string
	DSN          string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	MaxOpenConns int
}

type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

type JWTConfig struct {
	Secret string
	Expire time.Duration
}

// Load читает .env (если есть), необязательный файл конфига и переменные окружения.
// Переменные окружения важнее файла.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("NODE_ENV", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_EXPIRE", "7d")
	v.SetDefault("CORS_ORIGIN", "http://frontend:7070")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env: strings.ToLower(v.GetString("NODE_ENV")),
		Server: ServerConfig{
			Address:    v.GetString("HOST"),
			HTTPPort:   v.GetString("PORT"),
			CORSOrigin: v.GetString("CORS_ORIGIN"),
			UIDir:      v.GetString("UI_DIR"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:          v.GetString("DB_DSN"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
			File:   v.GetString("LOG_FILE"),
		},
		JWT: JWTConfig{Secret: v.GetString("JWT_SECRET")},
	}

	var errs []error
	switch cfg.Env {
	case "development", "production", "test":
	default:
		errs = append(errs, fmt.Errorf("NODE_ENV must be development|production|test, got %q", cfg.Env))
	}
	if n, err := strconv.Atoi(cfg.Server.HTTPPort); err != nil || n < 1 || n > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be 1..65535, got %q", cfg.Server.HTTPPort))
	}
	switch cfg.Logging.Level {
	case "error", "warn", "info", "debug":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be error|warn|info|debug, got %q", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text|json, got %q", cfg.Logging.Format))
	}
	if len(cfg.JWT.Secret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	exp, err := ParseExpire(v.GetString("JWT_EXPIRE"))
	if err != nil {
		errs = append(errs, err)
	}
	cfg.JWT.Expire = exp

	switch cfg.Database.Driver {
	case "mysql", "postgres":
		if cfg.Database.DSN == "" {
			var missing []string
			for k, val := range map[string]string{"DB_HOST": cfg.Database.Host, "DB_USER": cfg.Database.User, "DB_PASSWORD": cfg.Database.Password, "DB_NAME": cfg.Database.Name} {
				if val == "" {
					missing = append(missing, k)
				}
			}
			if len(missing) > 0 {
				sort.Strings(missing)
				errs = append(errs, fmt.Errorf("missing required database settings: %s", strings.Join(missing, ", ")))
			} else {
				cfg.Database.DSN = cfg.Database.BuildDSN()
			}
		}
	case "sqlite":
		if cfg.Database.DSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for sqlite"))
		} else {
			cfg.Database.DSN = SQLiteDSN(cfg.Database.DSN)
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be mysql|postgres|sqlite, got %q", cfg.Database.Driver))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config validation failed: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// BuildDSN собирает DSN из DB_* переменных.
// Для mysql включён clientFoundRows: UPDATE без изменений всё равно считает строку найденной.
func (d DatabaseConfig) BuildDSN() string {
	switch d.Driver {
	case "postgres":
		port := d.Port
		if port == "" || port == "3306" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host, port, d.User, d.Password, d.Name)
	default:
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, d.Port)
		mc.DBName = d.Name
		mc.ParseTime = true
		mc.ClientFoundRows = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	}
}

// SQLiteDSN включает внешние ключи, если DSN не задаёт их явно:
// без них sqlite не выполняет ON DELETE CASCADE/RESTRICT.
func SQLiteDSN(dsn string) string {
	base, query, _ := strings.Cut(dsn, "?")
	for _, kv := range strings.Split(query, "&") {
		k, _, _ := strings.Cut(kv, "=")
		if k == "_foreign_keys" || k == "_fk" {
			return dsn
		}
	}
	if query == "" {
		return base + "?_foreign_keys=on"
	}
	return dsn + "&_foreign_keys=on"
}

// ParseExpire понимает "7d", "12h", "30m", "45s", а также голое число секунд.
func ParseExpire(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("JWT_EXPIRE is empty")
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid JWT_EXPIRE %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid JWT_EXPIRE %q", s)
	}
	return d, nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

