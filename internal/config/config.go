package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env          string        `yaml:"env" env-default:"local" env:"ENV"`
	Address      string        `yaml:"address" env:"MCAST_ADDRESS" env-default:"239.255.255.250"`
	Port         int           `yaml:"port" env:"MCAST_PORT" env-default:"8888"`
	Message      string        `yaml:"message" env:"MCAST_MESSAGE" env-default:"Hello from client"`
	Interface    string        `yaml:"interface" env:"MCAST_INTERFACE"`
	SendInterval time.Duration `yaml:"send_interval" env:"MCAST_SEND_INTERVAL" env-default:"3s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"MCAST_READ_TIMEOUT" env-default:"1s"`
	PresetsPath  string        `yaml:"presets_path" env:"PRESETS_PATH" env-default:"presets.db"`
	MetricsAddr  string        `yaml:"metrics_addr" env:"METRICS_ADDR"`
}

// Load reads the config without panicking, for reloads after startup.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

func MustLoadConfig(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

// Priority: flag > env > default.
// default value is empty string.
func FetchPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
