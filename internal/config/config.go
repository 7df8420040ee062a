package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"pokerbots-server/internal/util"
)

// Config provides configuration for the poker bots server
type Config struct {
	loaded        bool
	SmallBlind    int `yaml:"smallBlind" envconfig:"small_blind"`
	StartingChips int `yaml:"startingChips" envconfig:"starting_chips"`
	// BotDelayMS is how long a bot waits before acting, in milliseconds
	BotDelayMS int `yaml:"botDelayMs" envconfig:"bot_delay_ms"`
	Log        struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

// BotDelay returns the bot think delay as a duration
func (c Config) BotDelay() time.Duration {
	return time.Duration(c.BotDelayMS) * time.Millisecond
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration.
// The config file is optional; environment variables always win.
func Load() error {
	config = Config{
		SmallBlind:    5,
		StartingChips: 1000,
		BotDelayMS:    1000,
	}
	config.Log.Level = "info"

	configFile := util.Getenv("PB_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("pb", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
