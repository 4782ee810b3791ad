package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type ReconConfig struct {
	Env        string `yaml:"env" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	ReconDB    `yaml:"recon_db"`
	Redis      `yaml:"redis"`
	Kafka      `yaml:"kafka"`
	AuthStore  `yaml:"authoritative_store"`
	LogConfig  `yaml:"log_config"`
	Polling    `yaml:"polling"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type ReconDB struct {
	Dsn            string `yaml:"dsn" env:"RECON_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path"`
}

type Redis struct {
	Addr     string `yaml:"addr" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"RECON_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

type Kafka struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Topic   string `yaml:"topic" env-default:"recon-invalidations"`
	GroupID string `yaml:"group_id" env-default:"recon-service"`
}

type AuthStore struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type Polling struct {
	UserInterval  time.Duration `yaml:"user_interval" env-default:"30s"`
	AdminInterval time.Duration `yaml:"admin_interval" env-default:"10s"`
}

func MustLoad() *ReconConfig {
	configPath := os.Getenv("RECON_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("RECON_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg ReconConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
