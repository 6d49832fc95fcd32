// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	Wallet              string        `mapstructure:"wallet"`
	MetadataURL         string        `mapstructure:"metadata_url"`
	Slippage            float64       `mapstructure:"slippage"`
	PriorityFee         uint64        `mapstructure:"priority_fee"`
	CreateTokenAccount  bool          `mapstructure:"create_token_account"`
	WaitForConfirmation bool          `mapstructure:"wait_for_confirmation"`
	ConfirmationTimeout time.Duration `mapstructure:"confirmation_timeout"`
	PushgatewayURL      string        `mapstructure:"pushgateway_url"`
	JournalFile         string        `mapstructure:"journal_file"`
	LogFile             string        `mapstructure:"log_file"`
	DebugLogging        bool          `mapstructure:"debug_logging"`
}

const (
	EnvPrefix = "PUMPFUN"

	DefaultMetadataURL         = "https://frontend-api.pump.fun"
	DefaultSlippage            = 0.10
	DefaultPriorityFee         = 1_000_000 // micro-lamports per compute unit
	DefaultConfirmationTimeout = 30 * time.Second
	DefaultLogFile             = "pumpfun.log"
)

// ErrMissingWallet is returned by RequireWallet when no key is configured.
var ErrMissingWallet = errors.New("missing wallet private key in configuration")

// LoadConfig читает конфигурацию из файла (необязательного), переменных окружения и значений по умолчанию.
// Переменные окружения имеют префикс PUMPFUN_; RPC_URL и WALLET также поддерживаются.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"rpc_url":               "",
		"wallet":                "",
		"metadata_url":          DefaultMetadataURL,
		"slippage":              DefaultSlippage,
		"priority_fee":          DefaultPriorityFee,
		"create_token_account":  true,
		"wait_for_confirmation": false,
		"confirmation_timeout":  DefaultConfirmationTimeout,
		"pushgateway_url":       "",
		"journal_file":          "",
		"log_file":              DefaultLogFile,
		"debug_logging":         false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := loadEnvironmentVariables(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Wallet = strings.TrimSpace(cfg.Wallet)

	return &cfg, validateConfig(&cfg)
}

// LoadDotEnv загружает переменные из .env файлов; отсутствующий файл не считается ошибкой.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// RequireWallet checks that a signing key is configured.
func (c *Config) RequireWallet() error {
	if c.Wallet == "" {
		return ErrMissingWallet
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.RPCURL == "" {
		return errors.New("missing rpc_url in configuration")
	}
	if err := validateURLWithCache(cfg.RPCURL, "http"); err != nil {
		return errors.New("invalid RPC URL protocol")
	}
	if cfg.MetadataURL != "" {
		if err := validateURLWithCache(cfg.MetadataURL, "http"); err != nil {
			return errors.New("invalid metadata URL protocol")
		}
	}
	if cfg.PushgatewayURL != "" {
		if err := validateURLWithCache(cfg.PushgatewayURL, "http"); err != nil {
			return errors.New("invalid pushgateway URL protocol")
		}
	}
	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if math.IsNaN(cfg.Slippage) || cfg.Slippage < 0 || cfg.Slippage > 1 {
		return errors.New("invalid slippage: must be within [0, 1]")
	}
	if cfg.ConfirmationTimeout <= 0 {
		return errors.New("invalid confirmation_timeout")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

func loadEnvironmentVariables(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Короткие имена переменных окружения для ключа и RPC
	if err := v.BindEnv("rpc_url", EnvPrefix+"_RPC_URL", "RPC_URL"); err != nil {
		return err
	}
	return v.BindEnv("wallet", EnvPrefix+"_WALLET", "WALLET")
}
