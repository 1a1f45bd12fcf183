package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Redis     RedisConfig     `json:"redis"`
	RabbitMQ  RabbitMQConfig  `json:"rabbitmq"`
	Storage   StorageConfig   `json:"storage"`
	JWT       JWTConfig       `json:"jwt"`
	RateLimit RateLimitConfig `json:"ratelimit"`
}

type ServerConfig struct {
	Port string `json:"port"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type RabbitMQConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type StorageConfig struct {
	Bucket        string `json:"bucket"`
	Region        string `json:"region"`
	AccessKey     string `json:"access_key"`
	SecretKey     string `json:"secret_key"`
	BaseEndpoint  string `json:"base_endpoint"`
	PublicBaseURL string `json:"public_base_url"`
}

type JWTConfig struct {
	Secret string `json:"secret"`
}

type RateLimitConfig struct {
	WindowSeconds  int   `json:"window_seconds"`
	MaxSubmissions int64 `json:"max_submissions"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	if config.RateLimit.WindowSeconds == 0 {
		config.RateLimit.WindowSeconds = 60
	}
	if config.RateLimit.MaxSubmissions == 0 {
		config.RateLimit.MaxSubmissions = 5
	}

	return &config, nil
}
