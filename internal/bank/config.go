package bank

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port     int
	NodeID   int64
	LogLevel string
	HTTPLog  bool
	SeedFile string
	ENV      string
}

type Config struct {
	Port     int    `yaml:"port"`
	NodeID   int64  `yaml:"nodeID"`
	LogLevel string `yaml:"logLevel"`
	HTTPLog  bool   `yaml:"httpLog"`
	SeedFile string `yaml:"seedFile"`
}

func defaultConfig() Config {
	return Config{
		Port:     8080,
		NodeID:   0,
		LogLevel: "info",
		HTTPLog:  false,
		SeedFile: "",
	}
}

// LoadConfig reads config/minibank.yaml, then applies the non-zero fields of
// config/minibank.<APP_ENV>.yaml on top. A missing base file falls back to
// defaults so the binary runs without any config on disk.
func LoadConfig() (*AppConfig, error) {
	config := defaultConfig()

	baseConfigFile, err := os.ReadFile("config/minibank.yaml")

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read base config failed: %w", err)
	}

	if err == nil {
		err = yaml.Unmarshal(baseConfigFile, &config)

		if err != nil {
			return nil, fmt.Errorf("parse base config failed: %w", err)
		}
	}

	appEnv := os.Getenv("APP_ENV")

	if appEnv == "" {
		appEnv = "local"
	} else {
		overrideConfigFile, err := os.ReadFile("config/minibank." + appEnv + ".yaml")

		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read override config failed: %w", err)
		}

		if err == nil {
			var overrideConfig Config
			err = yaml.Unmarshal(overrideConfigFile, &overrideConfig)

			if err != nil {
				return nil, fmt.Errorf("parse override config failed: %w", err)
			}

			if overrideConfig.Port != 0 {
				config.Port = overrideConfig.Port
			}
			if overrideConfig.NodeID != 0 {
				config.NodeID = overrideConfig.NodeID
			}
			if overrideConfig.LogLevel != "" {
				config.LogLevel = overrideConfig.LogLevel
			}
			if overrideConfig.HTTPLog {
				config.HTTPLog = true
			}
			if overrideConfig.SeedFile != "" {
				config.SeedFile = overrideConfig.SeedFile
			}
		}
	}

	err = validateConfig(config)

	if err != nil {
		return nil, err
	}

	return toAppConfig(config, appEnv), nil
}

func validateConfig(config Config) error {
	if config.Port <= 0 || config.Port > 65535 {
		return errors.New("port is out of range")
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.LogLevel)
	}

	return nil
}

func toAppConfig(config Config, env string) *AppConfig {
	return &AppConfig{
		Port:     config.Port,
		NodeID:   config.NodeID,
		LogLevel: config.LogLevel,
		HTTPLog:  config.HTTPLog,
		SeedFile: config.SeedFile,
		ENV:      env,
	}
}

// LoadSeedAccounts reads a yaml account list for local development. The
// production default leaves SeedFile unset and the registry empty.
func LoadSeedAccounts(path string) ([]Account, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("read seed file failed: %w", err)
	}

	var seed struct {
		Accounts []struct {
			ID          int64   `yaml:"id"`
			Owner       string  `yaml:"owner"`
			Balance     float64 `yaml:"balance"`
			Currency    *string `yaml:"currency"`
			Status      *string `yaml:"status"`
			CreatedAt   *string `yaml:"createdAt"`
			AccountType *string `yaml:"accountType"`
		} `yaml:"accounts"`
	}

	err = yaml.Unmarshal(data, &seed)

	if err != nil {
		return nil, fmt.Errorf("parse seed file failed: %w", err)
	}

	accounts := make([]Account, len(seed.Accounts))

	for i, entry := range seed.Accounts {
		accounts[i] = Account{
			ID:          entry.ID,
			Owner:       entry.Owner,
			Balance:     entry.Balance,
			Currency:    entry.Currency,
			Status:      entry.Status,
			CreatedAt:   entry.CreatedAt,
			AccountType: entry.AccountType,
		}
	}

	return accounts, nil
}
