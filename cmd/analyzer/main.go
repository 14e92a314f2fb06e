package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Missing .env is fine; env vars may come from the environment proper.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "analyzer",
		Short:        "Wallet analytics for a reference token",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <address>",
		Short: "Run a full address analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	analyzeCmd.Flags().String("rpc", "", "chain RPC URL")
	analyzeCmd.Flags().String("blockscout-url", "", "explorer REST base URL")
	analyzeCmd.Flags().String("subgraph-url", "", "lending subgraph URL")
	analyzeCmd.Flags().String("reference-token", "", "reference token address")
	analyzeCmd.Flags().String("reference-symbol", "", "reference token symbol")
	analyzeCmd.Flags().String("base-asset", "", "base asset symbol for pool-side swaps")
	analyzeCmd.Flags().Int("max-pages", 20, "max explorer transfer pages")
	analyzeCmd.Flags().Int("tx-limit", 50, "max transactions inspected for router calls")
	analyzeCmd.Flags().Int("max-retries", 3, "maximum retry attempts")
	analyzeCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	analyzeCmd.Flags().Duration("cache-ttl", 30*time.Second, "gateway response cache TTL")
	analyzeCmd.Flags().String("redis-addr", "", "optional Redis address for a shared response cache")
	analyzeCmd.Flags().String("out", "./data/analysis.json", "output report path")
	analyzeCmd.Flags().String("jsonl", "", "optional JSONL snapshot sink")
	analyzeCmd.Flags().String("postgres-dsn", "", "optional Postgres DSN for persistence")
	analyzeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(analyzeCmd)

	chartCmd := &cobra.Command{
		Use:   "chart <address>",
		Short: "Build candle series and markers for chart display",
		Args:  cobra.ExactArgs(1),
		RunE:  runChart,
	}

	chartCmd.Flags().String("rpc", "", "chain RPC URL")
	chartCmd.Flags().String("blockscout-url", "", "explorer REST base URL")
	chartCmd.Flags().String("subgraph-url", "", "lending subgraph URL")
	chartCmd.Flags().String("gecko-url", "", "price API base URL")
	chartCmd.Flags().String("resolution", "60", `candle resolution ("1","5","15","30","60","240","D","W")`)
	chartCmd.Flags().String("lookback", "1w", `history window ("1h","4h","12h","1d","3d","1w","2w","1m","3m","all")`)
	chartCmd.Flags().String("pool", "", "price pool address (defaults to the configured reference pool)")
	chartCmd.Flags().Bool("include-price", true, "include the pool price series")
	chartCmd.Flags().Bool("include-lending", true, "include lending volume candles")
	chartCmd.Flags().Bool("include-operations", true, "include operation markers")
	chartCmd.Flags().String("out", "./data/chart.json", "output chart data path")
	chartCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(chartCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
