package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	clear1 := setEnv("PB_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := setEnv("PB_STARTING_CHIPS", "2500")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal(25, cfg.SmallBlind)
	a.Equal(2500, cfg.StartingChips)
	a.Equal("debug", cfg.Log.Level)

	// ensure that it's only loaded once
	_ = os.Setenv("PB_STARTING_CHIPS", "9999")
	// ensure we aren't using a pointer
	cfg.StartingChips = -1
	cfg = Instance()
	a.Equal(2500, cfg.StartingChips)
}

func TestDefaults(t *testing.T) {
	clear1 := setEnv("PB_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal(5, cfg.SmallBlind)
	a.Equal(1000, cfg.StartingChips)
	a.Equal(time.Second, cfg.BotDelay())
	a.Equal("info", cfg.Log.Level)
}

func setEnv(key, val string) func() {
	orig := os.Getenv(key)
	_ = os.Setenv(key, val)
	return func() {
		if orig == "" {
			_ = os.Unsetenv(key)
		} else {
			_ = os.Setenv(key, orig)
		}
	}
}
