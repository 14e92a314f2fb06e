package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"walletScope/internal/analysis"
	"walletScope/internal/candle"
	"walletScope/internal/chain"
	"walletScope/internal/config"
	"walletScope/internal/gateway"
	"walletScope/internal/model"
	"walletScope/internal/normalize"
	"walletScope/internal/registry"
	"walletScope/internal/report"
	"walletScope/internal/storage"
	"walletScope/internal/storage/postgres"
)

// fetchLimit bounds concurrent upstream requests per analysis run.
const fetchLimit = 4

func runAnalyze(cmd *cobra.Command, args []string) error {
	address := args[0]
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid address: %s", address)
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := registry.New(cfg.Pools, cfg.Routers)
	if err != nil {
		return fmt.Errorf("build venue registry: %w", err)
	}

	gw := newGateway(cfg, logger)
	blockscout := gateway.NewBlockscout(gw, reg)
	subgraph := gateway.NewSubgraph(gw, cfg.LendingCurrency)

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("query chain id: %w", err)
	}
	head, err := chainClient.LatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("query head block: %w", err)
	}

	logger.Info("analysis start",
		zap.String("address", address),
		zap.String("reference_token", cfg.ReferenceToken),
		zap.String("chain_id", chainID.String()),
		zap.Uint64("head_block", head),
		zap.Int("max_pages", cfg.MaxTransferPages),
	)

	start := time.Now()

	var (
		currentBalance    float64
		rawTransfers      []model.RawTransfer
		pages             int
		transfersComplete bool
		internalTxCount   int
		routerCalls       []model.RouterInteraction
		lendingHistory    gateway.LendingHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)

	g.Go(func() error {
		var err error
		currentBalance, err = chainClient.TokenBalance(gctx, cfg.ReferenceToken, address, cfg.ReferenceDecimals)
		if err != nil {
			return fmt.Errorf("fetch current balance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rawTransfers, pages, transfersComplete, err = blockscout.FetchAllTransfers(gctx, address, cfg.MaxTransferPages)
		return err
	})
	g.Go(func() error {
		var err error
		internalTxCount, err = blockscout.FetchInternalTransactions(gctx, address)
		return err
	})
	g.Go(func() error {
		var err error
		_, routerCalls, err = blockscout.FetchTransactions(gctx, address, cfg.TxLimit)
		return err
	})
	g.Go(func() error {
		var err error
		lendingHistory, err = subgraph.FetchLendingHistory(gctx, address)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	norm := normalize.New(address, reg)
	transfers, dropped := norm.NormalizeBatch(rawTransfers)
	if dropped > 0 {
		logger.Warn("dropped malformed transfers", zap.Int("count", dropped))
	}

	analyzer := analysis.New(cfg.ReferenceToken, cfg.ReferenceSymbol, cfg.BaseAssetSymbol,
		analysis.WithLogger(logger))

	result := analyzer.Analyze(analysis.Inputs{
		Address:           address,
		Now:               time.Now().UTC(),
		CurrentBalance:    currentBalance,
		Transfers:         transfers,
		TransfersComplete: transfersComplete,
		Pages:             pages,
		RouterCalls:       routerCalls,
		InternalTxCount:   internalTxCount,
		LendingEvents:     lendingHistory.Events,
		LendingTxCount:    lendingHistory.TxCount,
		LendingOrderCount: lendingHistory.OrderCount,
		FetchDuration:     time.Since(start),
	})

	if err := report.WriteJSON(cfg.Out, result); err != nil {
		return err
	}
	logger.Info("report written", zap.String("path", cfg.Out))

	var sinks []storage.Storage
	if cfg.JSONLPath != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.JSONLPath))
	}

	var store *postgres.Store
	if cfg.PostgresDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if last, ok, err := store.LoadState(ctx, result.Address); err != nil {
			return fmt.Errorf("load analyzer state: %w", err)
		} else if ok {
			logger.Info("previous analysis found", zap.Time("last_analyzed_at", last))
		}
		sinks = append(sinks, store)
	}

	for _, sink := range sinks {
		if err := sink.PutAnalysis(ctx, result); err != nil {
			return fmt.Errorf("persist analysis: %w", err)
		}
	}

	if store != nil {
		hourly := buildBalanceSeries(transfers, cfg.ReferenceToken, currentBalance,
			candle.ResH1, candle.LookbackAll, result.GeneratedAt)
		if err := store.UpsertBalanceCandles(ctx, result.Address, candle.ResH1.Code, hourly); err != nil {
			return fmt.Errorf("persist balance candles: %w", err)
		}
		if err := store.SaveState(ctx, result.Address, result.GeneratedAt); err != nil {
			return fmt.Errorf("save analyzer state: %w", err)
		}
	}

	logger.Info("analysis complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("balance", currentBalance),
		zap.Int("transfers", len(transfers)),
		zap.Int("swaps", result.SwapStats.TotalSwaps),
		zap.Strings("tags", result.Behavior.Tags),
	)
	return nil
}

func newGateway(cfg config.Config, logger *zap.Logger) *gateway.Client {
	opts := []gateway.Option{gateway.WithLogger(logger)}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		opts = append(opts, gateway.WithCache(gateway.NewRedisCache(rdb, "")))
	}
	return gateway.NewClient(gateway.Config{
		BlockscoutURL: cfg.BlockscoutURL,
		SubgraphURL:   cfg.SubgraphURL,
		GeckoURL:      cfg.GeckoURL,
		CacheTTL:      cfg.CacheTTL,
		MaxRetries:    cfg.MaxRetries,
		RetryBackoff:  cfg.RetryBackoff,
	}, opts...)
}
