package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	AdminID   int64           `yaml:"admin_id" env:"SANTA_ADMIN_ID"`
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Game      GameConfig      `yaml:"game"`
	Reminders RemindersConfig `yaml:"reminders"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address" env:"HTTP_ADDRESS" env-default:""`
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:","`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DATABASE_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn" env:"DATABASE_URL"`
	Path   string `yaml:"path" env:"DATABASE_PATH" env-default:"santa.db"`
}

type StorageConfig struct {
	Type      string `yaml:"type" env:"STORAGE_TYPE" env-default:"local"`
	BasePath  string `yaml:"base_path" env:"STORAGE_BASE_PATH" env-default:"./uploads"`
	BaseURL   string `yaml:"base_url" env:"STORAGE_BASE_URL"`
	Bucket    string `yaml:"bucket" env:"STORAGE_BUCKET"`
	Region    string `yaml:"region" env:"STORAGE_REGION" env-default:"auto"`
	Endpoint  string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`
}

type GameConfig struct {
	// RejoinPolicy is "keep" or "reset"; see domain.RejoinPolicy.
	RejoinPolicy   string        `yaml:"rejoin_policy" env:"GAME_REJOIN_POLICY" env-default:"keep"`
	ProofMode      string        `yaml:"proof_mode" env:"GAME_PROOF_MODE" env-default:"any"`
	BroadcastDelay time.Duration `yaml:"broadcast_delay" env:"GAME_BROADCAST_DELAY" env-default:"50ms"`
	Language       string        `yaml:"language" env:"GAME_LANGUAGE" env-default:"en"`
}

type RemindersConfig struct {
	Enabled  bool          `yaml:"enabled" env:"REMINDERS_ENABLED"`
	Interval time.Duration `yaml:"interval" env:"REMINDERS_INTERVAL" env-default:"24h"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	cfg.setDefaults()

	if cfg.AdminID == 0 {
		panic("admin_id is required")
	}

	return &cfg
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

func (c *Config) setDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.Game.BroadcastDelay < 0 {
		c.Game.BroadcastDelay = 0
	}
	if c.Reminders.Interval <= 0 {
		c.Reminders.Interval = 24 * time.Hour
	}
}
