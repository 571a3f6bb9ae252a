package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	Log     LogConfig     `yaml:"log"`
	HTTP    HTTPConfig    `yaml:"http"`
	DB      DBConfig      `yaml:"db"`
	Redis   RedisConfig   `yaml:"redis"`
	Cache   CacheConfig   `yaml:"cache"`
	Board   BoardConfig   `yaml:"board"`
	Reports ReportsConfig `yaml:"reports"`
	Jaeger  JaegerConfig  `yaml:"jaeger"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"5s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

type DBConfig struct {
	Driver     string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	DSN        string `yaml:"dsn" env:"DB_DSN"`
	Host       string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port       int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User       string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password   string `yaml:"password" env:"DB_PASSWORD"`
	Name       string `yaml:"name" env:"DB_NAME" env-default:"board"`
	SSLMode    string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"data/board.db"`
}

// PostgresDSN returns DSN verbatim when set, otherwise assembles one from the parts.
func (c DBConfig) PostgresDSN() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	CatalogueTTL time.Duration `yaml:"catalogue_ttl" env:"CACHE_CATALOGUE_TTL" env-default:"1m"`
	LocalSize    int           `yaml:"local_size" env:"CACHE_LOCAL_SIZE" env-default:"16"`
}

type BoardConfig struct {
	Timezone     string        `yaml:"timezone" env:"BOARD_TIMEZONE" env-default:"Europe/Warsaw"`
	DisplayCount int           `yaml:"display_count" env:"BOARD_DISPLAY_COUNT" env-default:"7"`
	PastLimit    int           `yaml:"past_limit" env:"BOARD_PAST_LIMIT" env-default:"3"`
	PastWindow   time.Duration `yaml:"past_window" env:"BOARD_PAST_WINDOW" env-default:"30m"`
}

type ReportsConfig struct {
	ThrottleWindow time.Duration `yaml:"throttle_window" env:"REPORTS_THROTTLE_WINDOW" env-default:"15m"`
	Retention      time.Duration `yaml:"retention" env:"REPORTS_RETENTION" env-default:"60m"`
	PurgeSpec      string        `yaml:"purge_spec" env:"REPORTS_PURGE_SPEC" env-default:"0 0 * * *"`
	PurgeTimeout   time.Duration `yaml:"purge_timeout" env:"REPORTS_PURGE_TIMEOUT" env-default:"30s"`
}

type JaegerConfig struct {
	Enabled bool   `yaml:"enabled" env:"JAEGER_ENABLED" env-default:"false"`
	Address string `yaml:"address" env:"JAEGER_ADDRESS"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	cfg, err := LoadByPath(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func LoadByPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exists: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read the config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	if c.Board.DisplayCount <= 0 {
		return fmt.Errorf("board.display_count must be positive, got %d", c.Board.DisplayCount)
	}
	if c.Board.PastLimit < 0 || c.Board.PastLimit > c.Board.DisplayCount {
		return fmt.Errorf("board.past_limit must be within 0..%d, got %d", c.Board.DisplayCount, c.Board.PastLimit)
	}
	if c.Reports.ThrottleWindow <= 0 || c.Reports.Retention <= 0 {
		return fmt.Errorf("reports windows must be positive")
	}
	return nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}
