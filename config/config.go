// Package config reads the bridge settings from the environment.
//
// Every setting is read from a variable with the MFBRIDGE_ prefix. Variables
// can also come from a .env file, which never overrides variables that are
// already set.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mfbridge/mfbridge/bridge"
)

// Prefix is the prefix of every environment variable read by Load.
const Prefix = "MFBRIDGE_"

// DefaultEnvFile is loaded when Load is called without files.
const DefaultEnvFile = ".env"

// Config holds the settings of one bridge run.
type Config struct {
	// FrameRate is the number of host frames per second.
	FrameRate float64 `env:"FRAME_RATE" envDefault:"30"`

	// FrameLimit stops the host after this many frames. Zero runs forever.
	FrameLimit uint64 `env:"FRAME_LIMIT" envDefault:"0"`

	// RealTime paces frames with the wall clock.
	RealTime bool `env:"REAL_TIME" envDefault:"true"`

	InboxSize       int    `env:"INBOX_SIZE" envDefault:"64"`
	MaxVarsPerFrame int    `env:"MAX_VARS_PER_FRAME" envDefault:"30"`
	MaxNameScan     int    `env:"MAX_NAME_SCAN" envDefault:"1000"`
	Grammar         string `env:"GRAMMAR" envDefault:"default"`
	DefaultClient   string `env:"DEFAULT_CLIENT" envDefault:"MobiFlight"`

	// EventFiles lists the static event tables, in load order.
	EventFiles []string `env:"EVENT_FILES" envSeparator:","`

	// Fixture is a YAML file with the variables of the loopback host.
	Fixture string `env:"FIXTURE"`

	Record       bool   `env:"RECORD"`
	RecordPath   string `env:"RECORD_PATH"`
	RecordWrites bool   `env:"RECORD_WRITES" envDefault:"true"`
	RecordFrames bool   `env:"RECORD_FRAMES"`

	Monitor     bool `env:"MONITOR"`
	MonitorPort int  `env:"MONITOR_PORT" envDefault:"0"`
	OpenBrowser bool `env:"OPEN_BROWSER"`

	Verbose bool `env:"VERBOSE"`

	// TraceEvents logs every event the host engine runs.
	TraceEvents bool `env:"TRACE_EVENTS"`
}

// Load reads the given .env files, or DefaultEnvFile if none is given, and
// then parses the environment. A missing DefaultEnvFile is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	cfg := Config{}

	err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix})
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadEnvFiles(envFiles []string) error {
	if len(envFiles) == 0 {
		_, err := os.Stat(DefaultEnvFile)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		envFiles = []string{DefaultEnvFile}
	}

	if err := godotenv.Load(envFiles...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	return nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.FrameRate <= 0:
		return fmt.Errorf("frame rate must be positive, got %g", c.FrameRate)
	case c.InboxSize < 1:
		return fmt.Errorf("inbox size must be positive, got %d", c.InboxSize)
	case c.MaxVarsPerFrame < 1:
		return fmt.Errorf("max vars per frame must be positive, got %d",
			c.MaxVarsPerFrame)
	case c.MaxNameScan < 1:
		return fmt.Errorf("max name scan must be positive, got %d",
			c.MaxNameScan)
	case c.MonitorPort < 0 || c.MonitorPort > 65535:
		return fmt.Errorf("invalid monitor port %d", c.MonitorPort)
	case c.DefaultClient == "":
		return errors.New("default client name must not be empty")
	}

	if _, err := bridge.GrammarByName(c.Grammar); err != nil {
		return err
	}

	return nil
}

// BridgeGrammar returns the grammar selected by the Grammar setting.
func (c Config) BridgeGrammar() bridge.Grammar {
	g, err := bridge.GrammarByName(c.Grammar)
	if err != nil {
		panic(err)
	}

	return g
}
