package gateway

import (
	"context"
	"fmt"
	"sort"

	"walletScope/internal/candle"
	"walletScope/internal/model"
)

type ohlcvResponse struct {
	Data struct {
		Attributes struct {
			OHLCVList [][]float64 `json:"ohlcv_list"`
		} `json:"attributes"`
	} `json:"data"`
}

// Gecko reads pre-bucketed pool OHLCV from GeckoTerminal.
type Gecko struct {
	client  *Client
	network string
}

func NewGecko(client *Client, network string) *Gecko {
	if network == "" {
		network = "filecoin"
	}
	return &Gecko{client: client, network: network}
}

// FetchPriceOHLCV returns price candles for a pool at the given resolution,
// trimmed to the lookback window and sorted chronologically. The API caps a
// single response at 1000 candles.
func (g *Gecko) FetchPriceOHLCV(ctx context.Context, pool string, res candle.Resolution, lb candle.Lookback) ([]model.PriceCandle, error) {
	timeframe, aggregate := geckoTimeframe(res)

	limit := 1000
	if lb.Minutes > 0 {
		if n := lb.Minutes/res.Minutes + 10; n < limit {
			limit = n
		}
	}

	reqURL := fmt.Sprintf("%s/networks/%s/pools/%s/ohlcv/%s?aggregate=%d&limit=%d",
		g.client.cfg.GeckoURL, g.network, pool, timeframe, aggregate, limit)

	var resp ohlcvResponse
	if err := g.client.getJSON(ctx, reqURL, false, &resp); err != nil {
		return nil, fmt.Errorf("fetch pool ohlcv: %w", err)
	}

	candles := make([]model.PriceCandle, 0, len(resp.Data.Attributes.OHLCVList))
	for _, row := range resp.Data.Attributes.OHLCVList {
		if len(row) < 6 {
			continue
		}
		candles = append(candles, model.PriceCandle{
			Time:   int64(row[0]),
			Open:   row[1],
			High:   row[2],
			Low:    row[3],
			Close:  row[4],
			Volume: row[5],
		})
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].Time < candles[j].Time })
	return candles, nil
}

// geckoTimeframe maps a chart resolution onto the API's timeframe plus
// aggregate multiplier.
func geckoTimeframe(res candle.Resolution) (string, int) {
	switch {
	case res.Minutes <= 15:
		return "minute", res.Minutes
	case res.Minutes <= 720:
		return "hour", res.Minutes / 60
	default:
		return "day", res.Minutes / 1440
	}
}
