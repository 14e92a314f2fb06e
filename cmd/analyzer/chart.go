package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"walletScope/internal/candle"
	"walletScope/internal/chain"
	"walletScope/internal/config"
	"walletScope/internal/gateway"
	"walletScope/internal/model"
	"walletScope/internal/normalize"
	"walletScope/internal/registry"
	"walletScope/internal/report"
)

type chartData struct {
	Address        string                  `json:"address"`
	Resolution     string                  `json:"resolution"`
	Lookback       string                  `json:"lookback"`
	GeneratedAt    time.Time               `json:"generated_at"`
	BalanceCandles []model.BalanceCandle   `json:"balance_candles"`
	VolumeCandles  []model.VolumeCandle    `json:"volume_candles,omitempty"`
	PriceCandles   []model.PriceCandle     `json:"price_candles,omitempty"`
	Markers        []model.OperationMarker `json:"markers,omitempty"`
	Breakdown      map[string]int          `json:"marker_breakdown,omitempty"`
}

func runChart(cmd *cobra.Command, args []string) error {
	address := args[0]
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid address: %s", address)
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	resCode, _ := cmd.Flags().GetString("resolution")
	res, err := candle.ParseResolution(resCode)
	if err != nil {
		return err
	}
	lbLabel, _ := cmd.Flags().GetString("lookback")
	lb, err := candle.ParseLookback(lbLabel)
	if err != nil {
		return err
	}

	includePrice, _ := cmd.Flags().GetBool("include-price")
	includeLending, _ := cmd.Flags().GetBool("include-lending")
	includeOperations, _ := cmd.Flags().GetBool("include-operations")

	pool, _ := cmd.Flags().GetString("pool")
	if pool == "" {
		pool = cfg.Pools["usdfc_wfil"]
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
	gecko := gateway.NewGecko(gw, cfg.GeckoNetwork)

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	now := time.Now().UTC()

	var (
		currentBalance float64
		rawTransfers   []model.RawTransfer
		transactions   []model.RawTransaction
		lendingHistory gateway.LendingHistory
		priceCandles   []model.PriceCandle
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
		rawTransfers, _, _, err = blockscout.FetchAllTransfers(gctx, address, cfg.MaxTransferPages)
		return err
	})
	if includeOperations {
		g.Go(func() error {
			var err error
			transactions, _, err = blockscout.FetchTransactions(gctx, address, cfg.TxLimit)
			return err
		})
	}
	if includeLending {
		g.Go(func() error {
			var err error
			lendingHistory, err = subgraph.FetchLendingHistory(gctx, address)
			return err
		})
	}
	if includePrice && pool != "" {
		g.Go(func() error {
			var err error
			priceCandles, err = gecko.FetchPriceOHLCV(gctx, pool, res, lb)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	norm := normalize.New(address, reg)
	transfers, _ := norm.NormalizeBatch(rawTransfers)

	data := chartData{
		Address:        strings.ToLower(address),
		Resolution:     res.Code,
		Lookback:       lb.Label,
		GeneratedAt:    now,
		BalanceCandles: buildBalanceSeries(transfers, cfg.ReferenceToken, currentBalance, res, lb, now),
	}

	if includeLending {
		data.VolumeCandles = candle.BuildVolumeCandles(trimLending(lendingHistory.Events, lb, now), res)
	}
	if includePrice {
		data.PriceCandles = candle.FilterPriceCandles(priceCandles, lb, now)
	}
	if includeOperations {
		data.Markers = candle.BuildMarkers(transactions, lb, now)
		data.Breakdown = candle.MarkerBreakdown(data.Markers)
	}

	if err := report.WriteJSON(cfg.Out, data); err != nil {
		return err
	}

	logger.Info("chart data written",
		zap.String("path", cfg.Out),
		zap.String("resolution", res.Code),
		zap.String("lookback", lb.Label),
		zap.Int("balance_candles", len(data.BalanceCandles)),
		zap.Int("volume_candles", len(data.VolumeCandles)),
		zap.Int("price_candles", len(data.PriceCandles)),
		zap.Int("markers", len(data.Markers)),
	)
	return nil
}

// buildBalanceSeries anchors the candle series on the authoritative current
// balance, then restricts flows to the lookback window. Because the opening
// balance is derived by subtracting the windowed net flow from the current
// balance, widening the window only prepends candles and never shifts
// later ones.
func buildBalanceSeries(transfers []model.TransferEvent, referenceToken string, currentBalance float64, res candle.Resolution, lb candle.Lookback, now time.Time) []model.BalanceCandle {
	ref := strings.ToLower(referenceToken)
	scoped := make([]model.TransferEvent, 0, len(transfers))
	cutoff, bounded := lb.Cutoff(now)
	for _, e := range transfers {
		if strings.ToLower(e.TokenAddress) != ref {
			continue
		}
		if bounded && e.Timestamp.Before(cutoff) {
			continue
		}
		scoped = append(scoped, e)
	}
	return candle.BuildBalanceCandles(candle.BalanceFlows(scoped), currentBalance, res, now)
}

func trimLending(events []model.LendingEvent, lb candle.Lookback, now time.Time) []model.LendingEvent {
	cutoff, bounded := lb.Cutoff(now)
	if !bounded {
		return events
	}
	trimmed := make([]model.LendingEvent, 0, len(events))
	for _, e := range events {
		if e.Timestamp.Before(cutoff) {
			continue
		}
		trimmed = append(trimmed, e)
	}
	return trimmed
}
