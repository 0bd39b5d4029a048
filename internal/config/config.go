package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`

		CORSOrigin string `yaml:"cors_origin"`
		PublicURL  string `yaml:"public_url"` // ссылки в письмах алертов
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // For local storage
		BaseURL    string `yaml:"base_url"`    // Public URL base
		Bucket     string `yaml:"bucket"`      // For S3/R2
		Region     string `yaml:"region"`      // For S3
		AccessKey  string `yaml:"access_key"`  // For S3/R2
		SecretKey  string `yaml:"secret_key"`  // For S3/R2
		Endpoint   string `yaml:"endpoint"`    // For R2 or custom S3
		MaxPhotoMB int64  `yaml:"max_photo_mb"`
	} `yaml:"storage"`

	Matching struct {
		MinScore     int `yaml:"min_score"`
		DefaultLimit int `yaml:"default_limit"`
	} `yaml:"matching"`

	Alerts struct {
		Enabled        bool   `yaml:"enabled"`
		Interval       string `yaml:"interval"` // "15m"
		NotifyMinScore int    `yaml:"notify_min_score"`
		BatchSize      int    `yaml:"batch_size"`
	} `yaml:"alerts"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// AlertInterval разбирает alerts.interval, по умолчанию 15 минут
func (c *Config) AlertInterval() time.Duration {
	d, err := time.ParseDuration(c.Alerts.Interval)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// Load читает YAML-файл и проставляет значения по умолчанию
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// FromEnv собирает конфиг из переменных окружения (режим тестов и контейнеров)
func FromEnv() *Config {
	var cfg Config

	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.CORSOrigin = os.Getenv("CORS_ORIGIN")
	cfg.Server.PublicURL = os.Getenv("PUBLIC_URL")
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/files"

	cfg.Alerts.Enabled = os.Getenv("ALERTS_ENABLED") == "true"
	cfg.Alerts.Interval = os.Getenv("ALERTS_INTERVAL")

	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 4000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "*"
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 60
	}
	if c.Storage.MaxPhotoMB == 0 {
		c.Storage.MaxPhotoMB = 10
	}
	if c.Matching.DefaultLimit == 0 {
		c.Matching.DefaultLimit = 20
	}
	if c.Alerts.NotifyMinScore == 0 {
		c.Alerts.NotifyMinScore = 60
	}
	if c.Alerts.BatchSize == 0 {
		c.Alerts.BatchSize = 100
	}
}

// LoadConfig выбирает источник: если задан DATABASE_URL - окружение,
// иначе YAML по CONFIG_PATH
func LoadConfig() {
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("Loading configuration from environment variables")
		AppConfig = FromEnv()
		return
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
