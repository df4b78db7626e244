package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	Storage    `yaml:"storage"`
	HTTPServer `yaml:"http_server"`
	Auth       `yaml:"auth"`
	CORS       `yaml:"cors"`
	Booking    `yaml:"booking"`
	Kafka      `yaml:"kafka"`
	Prometheus `yaml:"prometheus"`
}

type Storage struct {
	// Driver is one of "postgres" (lib/pq), "pgx" or "memory".
	Driver          string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	URL             string        `yaml:"url" env:"DATABASE_URL"`
	Host            string        `yaml:"host" env-default:"localhost"`
	Port            int           `yaml:"port" env-default:"5432"`
	User            string        `yaml:"user" env-default:"postgres"`
	Password        string        `yaml:"password" env:"DB_PASSWORD"`
	DBName          string        `yaml:"dbname" env-default:"activity_booker"`
	SSLMode         string        `yaml:"sslmode" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"30m"`
	Migrate         bool          `yaml:"migrate" env:"STORAGE_MIGRATE"`
}

// DSN returns URL when set, otherwise a libpq keyword/value string built from the parts.
func (s Storage) DSN() string {
	if s.URL != "" {
		return s.URL
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		s.Host,
		s.Port,
		s.User,
		s.Password,
		s.DBName,
		s.SSLMode,
	)
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type Auth struct {
	Secret     string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `yaml:"token_ttl" env-default:"24h"`
	BcryptCost int           `yaml:"bcrypt_cost" env-default:"10"`

	// InsecureCookie drops the Secure flag from the credential cookie, for plain-http local runs.
	InsecureCookie bool `yaml:"insecure_cookie"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ORIGIN" env-separator:"," env-default:"http://localhost:3000"`
}

// Booking.TxTimeout bounds the whole booking including retries and must stay
// below HTTPServer.Timeout so the result is written before the connection deadline.
type Booking struct {
	TxTimeout      time.Duration `yaml:"tx_timeout" env-default:"3s"`
	PublishTimeout time.Duration `yaml:"publish_timeout" env-default:"2s"`
	Retry          `yaml:"retry"`
}

type Retry struct {
	Attempts uint          `yaml:"attempts" env-default:"5"`
	Delay    time.Duration `yaml:"delay" env-default:"20ms"`
	MaxDelay time.Duration `yaml:"max_delay" env-default:"500ms"`
}

type Kafka struct {
	Brokers  []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic    string   `yaml:"topic" env-default:"activity-bookings"`
	ClientID string   `yaml:"client_id" env-default:"activity-booker"`
	Version  string   `yaml:"version" env-default:"3.6.0"`
}

type Prometheus struct {
	Address string `yaml:"address" env:"METRICS_ADDRESS" env-default:"localhost:9090"`
}

var (
	ErrNoConfigPath = errors.New("config path is not set")
	ErrTxTimeout    = errors.New("booking.tx_timeout must be shorter than http_server.timeout")
)

func MustLoad() *Config {
	cfg, err := Load(fetchConfigPath())
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, ErrNoConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPServer.Timeout > 0 && cfg.Booking.TxTimeout >= cfg.HTTPServer.Timeout {
		return nil, fmt.Errorf("%w: %s >= %s", ErrTxTimeout, cfg.Booking.TxTimeout, cfg.HTTPServer.Timeout)
	}

	return &cfg, nil
}

// fetchConfigPath takes the path from the --config flag, falling back to CONFIG_PATH.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
