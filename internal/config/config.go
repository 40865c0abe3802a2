// config предоставляет структуру конфигурации tenders-service
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// HardMaxPages — потолок числа страниц, который позволяет источник.
const HardMaxPages = 100

// Бэкенды хранилища страниц.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMongo    = "mongo"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env"     env:"ENV"        env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	GRPC     GRPCConfig    `yaml:"grpc"`
	Source   SourceConfig  `yaml:"source"`
	Refresh  RefreshConfig `yaml:"refresh"`
	Pages    PagesConfig   `yaml:"pages"`
	DB       DBConfig      `yaml:"db"`
	S3       S3Config      `yaml:"s3"`
	Mongo    MongoConfig   `yaml:"mongo"`
	Limits   LimitsConfig  `yaml:"limits"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// GRPCConfig — сетевые настройки gRPC-сервера (health).
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50055"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50085"`
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// Addr возвращает адрес в формате host:port.
func (g HTTPConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// SourceConfig — параметры источника tenders.guru.
type SourceConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"TENDERS_BASE_URL"      env-default:"https://tenders.guru/api/pl/"`
	MaxPages       int           `yaml:"max_pages"       env:"MAX_SOURCE_PAGES"      env-default:"100"`
	MaxConcurrency int           `yaml:"max_concurrency" env:"FETCH_MAX_CONCURRENCY" env-default:"2"`
	Timeout        time.Duration `yaml:"timeout"         env:"SOURCE_TIMEOUT"        env-default:"30s"`
	// Запросов в секунду к источнику; 0 — без ограничения.
	RateLimit float64 `yaml:"rate_limit" env:"SOURCE_RATE_LIMIT" env-default:"0"`
}

// PageLimit возвращает число страниц для пересборки: clamp(MaxPages, 1, HardMaxPages).
func (s SourceConfig) PageLimit() int {
	return min(max(1, s.MaxPages), HardMaxPages)
}

// RefreshConfig — расписание пересборки индекса.
type RefreshConfig struct {
	Interval     time.Duration `yaml:"interval"      env:"REFRESH_INTERVAL"      env-default:"24h"`
	InitialDelay time.Duration `yaml:"initial_delay" env:"REFRESH_INITIAL_DELAY" env-default:"10s"`
	// Пауза перед повторной загрузкой упавших страниц.
	RetryDelay time.Duration `yaml:"retry_delay" env:"REFRESH_RETRY_DELAY" env-default:"300ms"`
}

// PagesConfig — долговременное хранение страниц источника.
// cleanenv подставляет env-default поверх нулевых значений, поэтому
// persist: false в YAML не действует: выключается через PERSIST_PAGES=false.
type PagesConfig struct {
	Persist bool   `yaml:"persist" env:"PERSIST_PAGES" env-default:"true"`
	Backend string `yaml:"backend" env:"PAGES_BACKEND" env-default:"file"`
	Dir     string `yaml:"dir"     env:"PAGES_DIR"     env-default:"data/tenders-pages"`
}

// DBConfig — настройки подключения к PostgreSQL (бэкенд postgres).
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// S3Config — настройки MinIO/S3 (бэкенд s3).
type S3Config struct {
	Endpoint     string `yaml:"endpoint"      env:"S3_ENDPOINT"`
	RootUser     string `yaml:"root_user"     env:"S3_ROOT_USER"`
	RootPassword string `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket       string `yaml:"bucket"        env:"S3_BUCKET"`
	Prefix       string `yaml:"prefix"        env:"S3_PREFIX"        env-default:"tenders-pages/"`
}

// MongoConfig — настройки MongoDB (бэкенд mongo).
type MongoConfig struct {
	URL        string `yaml:"url"        env:"MONGO_URL"`
	Database   string `yaml:"database"   env:"MONGO_DATABASE"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION" env-default:"tender_pages"`
}

// LimitsConfig — серверные лимиты на размер страницы выдачи.
type LimitsConfig struct {
	// Применяется, если page_size не передан.
	Default int `yaml:"default" env:"DEFAULT_PAGE_SIZE" env-default:"100"`
	// Верхняя граница для page_size.
	Max int `yaml:"max" env:"MAX_PAGE_SIZE" env-default:"1000"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь, 2) CONFIG_PATH.
	for _, p := range []string{path, os.Getenv("CONFIG_PATH")} {
		if p == "" {
			continue
		}
		c, err := tryRead(p)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source.base_url must be an absolute http(s) url")
	}
	if c.Source.MaxConcurrency < 1 {
		return fmt.Errorf("source.max_concurrency must be >= 1")
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be > 0")
	}
	if c.Source.RateLimit < 0 {
		return fmt.Errorf("source.rate_limit must be >= 0")
	}
	if c.Refresh.Interval < time.Minute {
		return fmt.Errorf("refresh.interval must be at least 1m")
	}
	if c.Refresh.InitialDelay < 0 {
		return fmt.Errorf("refresh.initial_delay must be >= 0")
	}
	if c.Refresh.RetryDelay < 0 {
		return fmt.Errorf("refresh.retry_delay must be >= 0")
	}
	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}
	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}
	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}
	if c.Pages.Persist {
		if err := c.validateBackend(); err != nil {
			return err
		}
	}
	return nil
}

// validateBackend проверяет, что для выбранного бэкенда страниц заданы обязательные поля.
func (c *Config) validateBackend() error {
	switch c.Pages.Backend {
	case BackendFile:
		if c.Pages.Dir == "" {
			return fmt.Errorf("pages.dir is required for file backend")
		}
	case BackendPostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("db.url is required for postgres backend")
		}
	case BackendS3:
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return fmt.Errorf("s3.endpoint and s3.bucket are required for s3 backend")
		}
	case BackendMongo:
		if c.Mongo.URL == "" {
			return fmt.Errorf("mongo.url is required for mongo backend")
		}
	default:
		return fmt.Errorf("pages.backend must be one of file, postgres, s3, mongo, got %q", c.Pages.Backend)
	}
	return nil
}
