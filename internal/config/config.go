package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

/*
	server:
	  addr: ":3000"
	  allowed_origins: ["http://localhost:5173"]
	log:
	  level: info
	store:
	  driver: redis          # memory | redis | badger
	  redis:
	    addr: "redis:6379"
	    db: 0
	    key: "chess:games"
	  badger:
	    dir: "/var/lib/chess"
*/

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverBadger = "badger"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Store struct {
		Driver string `yaml:"driver"`
		Redis  struct {
			Addr string `yaml:"addr"`
			DB   int    `yaml:"db"`
			Key  string `yaml:"key"`
		} `yaml:"redis"`
		Badger struct {
			Dir string `yaml:"dir"`
		} `yaml:"badger"`
	} `yaml:"store"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.Server.Addr = ":3000"
	c.Server.AllowedOrigins = []string{"http://localhost:5173"}
	c.Log.Level = "info"
	c.Store.Driver = DriverMemory
	c.Store.Redis.Addr = "localhost:6379"
	c.Store.Redis.Key = "chess:games"
	c.Store.Badger.Dir = "data/games"
	return c
}

// Load reads the YAML file named by CONFIG_PATH over the defaults, then
// applies environment overrides. A missing CONFIG_PATH is not an error.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping any field the document leaves out.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CHESS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CHESS_STORE"); v != "" {
		c.Store.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Store.Redis.Addr = v
	}
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("%w: store.redis.addr is empty", ErrInvalidConfig)
		}
	case DriverBadger:
		if c.Store.Badger.Dir == "" {
			return fmt.Errorf("%w: store.badger.dir is empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	return nil
}
