// Package config merges flags, environment, and an optional config file the
// same way for every subcommand. Precedence is flags over WALLETSCOPE_*
// environment variables over file values over defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	// Upstream services.
	RPCURL        string
	BlockscoutURL string
	SubgraphURL   string
	GeckoURL      string
	GeckoNetwork  string

	// Token identity.
	ReferenceToken    string
	ReferenceSymbol   string
	ReferenceDecimals int
	BaseAssetSymbol   string
	LendingCurrency   string

	// Known venue tables, name -> address.
	Pools   map[string]string
	Routers map[string]string

	// Fetch behavior.
	MaxTransferPages int
	TxLimit          int
	MaxRetries       int
	RetryBackoff     time.Duration
	CacheTTL         time.Duration
	RedisAddr        string

	// Persistence.
	Out         string
	PostgresDSN string
	JSONLPath   string

	LogLevel string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WALLETSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("rpc", "https://api.node.glif.io/rpc/v1")
	v.SetDefault("blockscout-url", "https://filecoin.blockscout.com/api/v2")
	v.SetDefault("subgraph-url", "https://api.goldsky.com/api/public/project_cm8i6ca9k24d601wy45zzbsrq/subgraphs/sf-filecoin-mainnet/latest/gn")
	v.SetDefault("gecko-url", "https://api.geckoterminal.com/api/v2")
	v.SetDefault("gecko-network", "filecoin")
	v.SetDefault("reference-token", "0x80B98d3aa09ffff255c3ba4A241111Ff1262F045")
	v.SetDefault("reference-symbol", "USDFC")
	v.SetDefault("reference-decimals", 18)
	v.SetDefault("base-asset", "WFIL")
	v.SetDefault("lending-currency", "0x5553444643000000000000000000000000000000000000000000000000000000")
	v.SetDefault("pools", map[string]string{
		"usdfc_wfil": "0x4e07447bd38e60b94176764133788be1a0736b30",
	})
	v.SetDefault("routers", map[string]string{
		"squid_router_proxy": "0xce16F69375520ab01377ce7B88f5BA8C48F8D666",
		"red_snwapper":       "0xAC4c6e212A361AA761D2BA4f96f4e0bb4c9b1A13",
	})
	v.SetDefault("max-pages", 20)
	v.SetDefault("tx-limit", 50)
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("cache-ttl", 30*time.Second)
	v.SetDefault("out", "./data/analysis.json")
	v.SetDefault("jsonl", "")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:            v.GetString("rpc"),
		BlockscoutURL:     v.GetString("blockscout-url"),
		SubgraphURL:       v.GetString("subgraph-url"),
		GeckoURL:          v.GetString("gecko-url"),
		GeckoNetwork:      v.GetString("gecko-network"),
		ReferenceToken:    v.GetString("reference-token"),
		ReferenceSymbol:   v.GetString("reference-symbol"),
		ReferenceDecimals: v.GetInt("reference-decimals"),
		BaseAssetSymbol:   v.GetString("base-asset"),
		LendingCurrency:   v.GetString("lending-currency"),
		Pools:             v.GetStringMapString("pools"),
		Routers:           v.GetStringMapString("routers"),
		MaxTransferPages:  v.GetInt("max-pages"),
		TxLimit:           v.GetInt("tx-limit"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
		CacheTTL:          v.GetDuration("cache-ttl"),
		RedisAddr:         v.GetString("redis-addr"),
		Out:               v.GetString("out"),
		PostgresDSN:       v.GetString("postgres-dsn"),
		JSONLPath:         v.GetString("jsonl"),
		LogLevel:          v.GetString("log-level"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ReferenceToken == "" {
		return fmt.Errorf("reference-token is required")
	}
	if c.ReferenceSymbol == "" {
		return fmt.Errorf("reference-symbol is required")
	}
	if c.BlockscoutURL == "" {
		return fmt.Errorf("blockscout-url is required")
	}
	return nil
}
