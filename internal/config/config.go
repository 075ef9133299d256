// Package config defines the configuration of a clickr run. Values are
// taken from a yaml file or environment variables or both. Every field
// has a default so that clickr runs without any configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jakopako/clickr/internal/output"
	"github.com/jakopako/clickr/internal/types"
)

// BrowserConfig holds the parameters needed to open a browser session.
type BrowserConfig struct {
	Headless        bool          `yaml:"headless" env:"CLICKR_HEADLESS" env-default:"false"`
	UserAgent       string        `yaml:"user_agent" env:"CLICKR_USER_AGENT"`
	WindowWidth     int           `yaml:"window_width" env-default:"1920"`
	WindowHeight    int           `yaml:"window_height" env-default:"1080"`
	PageLoadTimeout time.Duration `yaml:"page_load_timeout" env:"CLICKR_PAGE_LOAD_TIMEOUT" env-default:"30s"`
	ActionTimeout   time.Duration `yaml:"action_timeout" env:"CLICKR_ACTION_TIMEOUT" env-default:"5s"`
	DebugDir        string        `yaml:"debug_dir" env:"CLICKR_DEBUG_DIR" env-default:"debug"`
}

// Selectors are the css selectors of the game elements. They default to
// the DOM of https://orteil.dashnet.org/cookieclicker/.
type Selectors struct {
	BigCookie string `yaml:"big_cookie" env-default:"#bigCookie"`
	Counter   string `yaml:"counter" env-default:"#cookies"`
	Store     string `yaml:"store" env-default:"#products"`
	// Item selects the interactable items inside the store snapshot.
	Item      string `yaml:"item" env-default:".product.unlocked.enabled"`
	ItemName  string `yaml:"item_name" env-default:".productName"`
	ItemPrice string `yaml:"item_price" env-default:".price"`
	BulkBuy   string `yaml:"bulk_buy" env-default:"#storeBulkBuy"`
	BulkSell  string `yaml:"bulk_sell" env-default:"#storeBulkSell"`
	Bulk1     string `yaml:"bulk_1" env-default:"#storeBulk1"`
	Bulk10    string `yaml:"bulk_10" env-default:"#storeBulk10"`
	Bulk100   string `yaml:"bulk_100" env-default:"#storeBulk100"`
	BulkMax   string `yaml:"bulk_max" env-default:"#storeBulkMax"`
}

// Config defines the overall structure of the clickr configuration.
// BatchSize is the number of distinct purchases after which the purchase
// history is cleared and the bulk amount is switched to BatchBulk.
type Config struct {
	Name          string              `yaml:"name" env-default:"cookieclicker"`
	URL           string              `yaml:"url" env:"CLICKR_URL" env-default:"https://orteil.dashnet.org/cookieclicker/"`
	Duration      time.Duration       `yaml:"duration" env:"CLICKR_DURATION" env-default:"10m"`
	CheckInterval time.Duration       `yaml:"check_interval" env:"CLICKR_CHECK_INTERVAL" env-default:"3s"`
	ClickDelay    time.Duration       `yaml:"click_delay" env:"CLICKR_CLICK_DELAY" env-default:"0s"`
	BatchSize     int                 `yaml:"batch_size" env:"CLICKR_BATCH_SIZE" env-default:"2"`
	BatchBulk     int                 `yaml:"batch_bulk" env:"CLICKR_BATCH_BULK" env-default:"10"`
	Browser       BrowserConfig       `yaml:"browser"`
	Selectors     Selectors           `yaml:"selectors"`
	Interactions  []types.Interaction `yaml:"interactions,omitempty"`
	Writer        output.WriterConfig `yaml:"writer"`
}

// NewConfig reads the configuration from the file at configPath and the
// environment. A missing file is not an error, in that case only the
// environment and the defaults are used.
func NewConfig(configPath string) (*Config, error) {
	var config Config

	_, err := os.Stat(configPath)
	switch {
	case configPath == "" || errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&config); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
	case err != nil:
		return nil, err
	default:
		if err := cleanenv.ReadConfig(configPath, &config); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.URL == "" {
		return errors.New("url cannot be empty")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	if c.CheckInterval < 0 {
		return fmt.Errorf("check_interval cannot be negative, got %v", c.CheckInterval)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1, got %d", c.BatchSize)
	}
	for i, ia := range c.Interactions {
		switch ia.Type {
		case types.InteractionTypeClick:
			if ia.Selector == "" {
				return fmt.Errorf("interaction nr %d of type %s needs a selector", i, ia.Type)
			}
		case types.InteractionTypeWait:
		default:
			return fmt.Errorf("interaction nr %d has unknown type '%s'", i, ia.Type)
		}
	}
	return nil
}
