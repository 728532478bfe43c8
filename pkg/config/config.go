// Package config provides a reusable loader for the exchange's configuration
// files and environment variables. It is versioned so that applications can
// depend on a stable API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"line-exchange/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for a deployment of the three
// contracts. It mirrors the structure of the YAML files under config/.
type Config struct {
	FungibleToken struct {
		Name           string   `mapstructure:"name" json:"name"`
		Symbol         string   `mapstructure:"symbol" json:"symbol"`
		Decimals       uint8    `mapstructure:"decimals" json:"decimals"`
		InitialAdmin   string   `mapstructure:"initial_admin" json:"initial_admin"`
		InitialMinters []string `mapstructure:"initial_minters" json:"initial_minters"`
	} `mapstructure:"fungible_token" json:"fungible_token"`

	Withdrawal struct {
		BackendSignerPubKeyHex string `mapstructure:"backend_signer_pubkey" json:"backend_signer_pubkey"`
		MaxWithdrawalPerTx     string `mapstructure:"max_withdrawal_per_tx" json:"max_withdrawal_per_tx"`
		Paused                 bool   `mapstructure:"paused" json:"paused"`
	} `mapstructure:"withdrawal" json:"withdrawal"`

	Auction struct {
		FinalizerRewardBps uint32   `mapstructure:"finalizer_reward_bps" json:"finalizer_reward_bps"`
		Admins             []string `mapstructure:"admins" json:"admins"`
	} `mapstructure:"auction" json:"auction"`

	Logging struct {
		Level    string `mapstructure:"level" json:"level"`
		Encoding string `mapstructure:"encoding" json:"encoding"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	_ = godotenv.Load() // optional .env for local dev; absent in real deployments
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the LINE_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("LINE_ENV", ""))
}
