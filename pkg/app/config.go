package app

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"tableflip.dev/punch/pkg/api"
	"tableflip.dev/punch/pkg/cache"
)

// Config carries the settings the service needs from the environment.
type Config interface {
	BaseURL() string
	Token() string
	CachePath() string
	Delay() time.Duration
}

// LoadConfig reads settings from a .punch config file or PUNCH_* env vars.
func LoadConfig() (Config, error) {
	viper.SetDefault("url", "http://localhost:8080")
	viper.SetDefault("cache", "~/.punch.db")
	viper.SetDefault("debounce", "900ms")
	viper.SetConfigName(".punch") // .yaml is implicit
	viper.SetEnvPrefix("PUNCH")
	viper.AutomaticEnv()

	if override := os.Getenv("PUNCH_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("app: reading config file: %w", err)
		}
	}

	delay, err := time.ParseDuration(viper.GetString("debounce"))
	if err != nil {
		delay = 900 * time.Millisecond
	}
	return &fileConfig{
		URL:      viper.GetString("url"),
		APIToken: viper.GetString("token"),
		Cache:    viper.GetString("cache"),
		Debounce: delay,
	}, nil
}

type fileConfig struct {
	URL      string        `json:"url"`
	APIToken string        `json:"token"`
	Cache    string        `json:"cache"`
	Debounce time.Duration `json:"debounce"`
}

func (f *fileConfig) BaseURL() string      { return f.URL }
func (f *fileConfig) Token() string        { return f.APIToken }
func (f *fileConfig) CachePath() string    { return f.Cache }
func (f *fileConfig) Delay() time.Duration { return f.Debounce }

// Load builds a ready-to-use service from config, wiring the HTTP client
// and the offline cache.
func Load(cfg Config) (*Service, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	client := api.NewHTTPClient(cfg.BaseURL(), cfg.Token())
	opts := []Option{WithDelay(cfg.Delay())}
	if path := cfg.CachePath(); path != "" {
		c, err := cache.Open(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCache(c))
	}
	return NewService(client, opts...), nil
}
