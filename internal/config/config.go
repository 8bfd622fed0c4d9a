package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines engine configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// ScheduleConfig controls the in-process daily trigger and the day-boundary
// convention. Timezone decides what calendar date "today" is at run time.
type ScheduleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Timezone string `yaml:"timezone"`
	// DailyRunHour is the local hour (0-23) at which the daily driver fires
	// in serve mode.
	DailyRunHour int `yaml:"daily_run_hour"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "checklist.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Schedule: ScheduleConfig{
			Enabled:      true,
			Timezone:     "Local",
			DailyRunHour: 4,
		},
	}

	if path := os.Getenv("CHECKLIST_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("CHECKLIST_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CHECKLIST_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CHECKLIST_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("CHECKLIST_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("CHECKLIST_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if tz := os.Getenv("CHECKLIST_TIMEZONE"); tz != "" {
		cfg.Schedule.Timezone = tz
	}
	if hourStr := os.Getenv("CHECKLIST_DAILY_RUN_HOUR"); hourStr != "" {
		hour, err := strconv.Atoi(hourStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CHECKLIST_DAILY_RUN_HOUR: %w", err)
		}
		cfg.Schedule.DailyRunHour = hour
	}

	if cfg.Schedule.DailyRunHour < 0 || cfg.Schedule.DailyRunHour > 23 {
		return Config{}, fmt.Errorf("daily run hour %d out of range", cfg.Schedule.DailyRunHour)
	}

	return cfg, nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Schedule.Timezone, err)
	}
	return loc, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
