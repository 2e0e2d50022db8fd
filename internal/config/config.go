// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Sync    SyncConfig    `mapstructure:"sync"`
	Images  ImagesConfig  `mapstructure:"images"`
	Speech  SpeechConfig  `mapstructure:"speech"`
}

type StorageConfig struct {
	Backend      string `mapstructure:"backend" validate:"oneof=file sqlite"`
	Directory    string `mapstructure:"directory" validate:"required"`
	DatabaseFile string `mapstructure:"database_file"`
	QuotaBytes   int64  `mapstructure:"quota_bytes" validate:"min=0"`
}

type SyncConfig struct {
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" validate:"min=1"`
}

type ImagesConfig struct {
	UnsplashAccessKey string `mapstructure:"unsplash_access_key"`
	CacheKey          string `mapstructure:"cache_key" validate:"required"`
}

type SpeechConfig struct {
	Command string  `mapstructure:"command"`
	Rate    float64 `mapstructure:"rate" validate:"gt=0,lte=2"`
}

// PollInterval returns the sync poll interval as a duration.
func (c SyncConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordnest")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.directory", filepath.Join("data", "storage"))
	v.SetDefault("storage.database_file", filepath.Join("data", "wordnest.db"))
	// 5MB, matching a typical browser localStorage cap.
	v.SetDefault("storage.quota_bytes", int64(5*1024*1024))
	v.SetDefault("sync.poll_interval_seconds", 1)
	v.SetDefault("images.cache_key", "word_image_cache_permanent")
	v.SetDefault("speech.command", "")
	v.SetDefault("speech.rate", 0.8)

	// The image API key comes from the environment only, never the config file.
	if err := v.BindEnv("images.unsplash_access_key", "UNSPLASH_ACCESS_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind UNSPLASH_ACCESS_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
