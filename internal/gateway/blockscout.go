package gateway

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"walletScope/internal/model"
	"walletScope/internal/registry"
)

// DefaultMaxTransferPages bounds explorer pagination so a busy address
// cannot stall an analysis run. A capped fetch is reported as incomplete.
const DefaultMaxTransferPages = 20

type addressRef struct {
	Hash string `json:"hash"`
	Name string `json:"name"`
}

type tokenRef struct {
	Symbol      string `json:"symbol"`
	Address     string `json:"address_hash"`
	AddressAlt  string `json:"address"`
	DecimalsRaw string `json:"decimals"`
}

type transferItem struct {
	Timestamp string     `json:"timestamp"`
	From      addressRef `json:"from"`
	To        addressRef `json:"to"`
	Token     tokenRef   `json:"token"`
	Total     struct {
		Value string `json:"value"`
	} `json:"total"`
	TxHash      string `json:"transaction_hash"`
	BlockNumber uint64 `json:"block_number"`
}

type transferPage struct {
	Items          []transferItem `json:"items"`
	NextPageParams map[string]any `json:"next_page_params"`
}

type internalTxItem struct {
	Timestamp string     `json:"timestamp"`
	Type      string     `json:"type"`
	From      addressRef `json:"from"`
	To        addressRef `json:"to"`
	Value     string     `json:"value"`
	TxHash    string     `json:"transaction_hash"`
}

type internalTxPage struct {
	Items []internalTxItem `json:"items"`
}

type txItem struct {
	Timestamp string      `json:"timestamp"`
	Hash      string      `json:"hash"`
	To        *addressRef `json:"to"`
	Method    string      `json:"method"`
	Value     string      `json:"value"`
}

type txPage struct {
	Items []txItem `json:"items"`
}

// Blockscout reads address history from the explorer REST API.
type Blockscout struct {
	client *Client
	reg    *registry.Registry
	log    *zap.Logger
}

func NewBlockscout(client *Client, reg *registry.Registry) *Blockscout {
	return &Blockscout{client: client, reg: reg, log: client.log}
}

// FetchAllTransfers pages through every ERC-20 transfer touching the
// address, newest first, up to maxPages. The second result is the number of
// pages consumed; the third is false when the cap cut the history short.
func (b *Blockscout) FetchAllTransfers(ctx context.Context, address string, maxPages int) ([]model.RawTransfer, int, bool, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxTransferPages
	}

	base := fmt.Sprintf("%s/addresses/%s/token-transfers?type=ERC-20", b.client.cfg.BlockscoutURL, address)

	transfers := make([]model.RawTransfer, 0)
	var nextParams map[string]any
	pages := 0

	for pages < maxPages {
		reqURL := base
		if nextParams != nil {
			reqURL += "&" + encodePageParams(nextParams)
		}

		var page transferPage
		if err := b.client.getJSON(ctx, reqURL, true, &page); err != nil {
			return nil, pages, false, fmt.Errorf("fetch transfers page %d: %w", pages+1, err)
		}
		if len(page.Items) == 0 {
			break
		}

		for _, item := range page.Items {
			transfers = append(transfers, item.toRawTransfer())
		}

		pages++
		nextParams = page.NextPageParams
		if nextParams == nil {
			break
		}
	}

	isComplete := pages < maxPages || nextParams == nil
	b.log.Debug("fetched transfers",
		zap.String("address", address),
		zap.Int("count", len(transfers)),
		zap.Int("pages", pages),
		zap.Bool("complete", isComplete),
	)
	return transfers, pages, isComplete, nil
}

// FetchInternalTransactions returns the first page of internal transactions
// for the address. Used only for counting and router detection, so one page
// is enough.
func (b *Blockscout) FetchInternalTransactions(ctx context.Context, address string) (int, error) {
	reqURL := fmt.Sprintf("%s/addresses/%s/internal-transactions", b.client.cfg.BlockscoutURL, address)

	var page internalTxPage
	if err := b.client.getJSON(ctx, reqURL, true, &page); err != nil {
		return 0, fmt.Errorf("fetch internal transactions: %w", err)
	}
	return len(page.Items), nil
}

// FetchTransactions returns up to limit recent transactions for the address
// together with the router interactions found among them. A transaction
// counts as a router interaction when its target is a registered router, or
// when the target contract's display name suggests a swap or bridge venue.
func (b *Blockscout) FetchTransactions(ctx context.Context, address string, limit int) ([]model.RawTransaction, []model.RouterInteraction, error) {
	if limit <= 0 {
		limit = 50
	}

	reqURL := fmt.Sprintf("%s/addresses/%s/transactions", b.client.cfg.BlockscoutURL, address)

	var page txPage
	if err := b.client.getJSON(ctx, reqURL, true, &page); err != nil {
		return nil, nil, fmt.Errorf("fetch transactions: %w", err)
	}

	items := page.Items
	if len(items) > limit {
		items = items[:limit]
	}

	txs := make([]model.RawTransaction, 0, len(items))
	var calls []model.RouterInteraction
	seen := make(map[string]struct{})

	for _, item := range items {
		ts := parseExplorerTime(item.Timestamp)

		var to, contractName string
		if item.To != nil {
			to = item.To.Hash
			contractName = item.To.Name
		}

		txs = append(txs, model.RawTransaction{
			Timestamp:    ts,
			Hash:         item.Hash,
			To:           to,
			Method:       item.Method,
			ContractName: contractName,
			Value:        parseWei(item.Value),
		})

		routerName, isRouter := b.reg.RouterName(to)
		if !isRouter && looksLikeRouter(contractName) {
			routerName, isRouter = contractName, true
		}
		if !isRouter {
			continue
		}
		if _, dup := seen[item.Hash]; dup {
			continue
		}
		seen[item.Hash] = struct{}{}
		calls = append(calls, model.RouterInteraction{
			TxHash:    item.Hash,
			Router:    routerName,
			Method:    item.Method,
			Timestamp: ts,
		})
	}

	return txs, calls, nil
}

func looksLikeRouter(contractName string) bool {
	if contractName == "" {
		return false
	}
	name := strings.ToLower(contractName)
	for _, hint := range []string{"router", "swap", "squid", "snwap"} {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}

func (t transferItem) toRawTransfer() model.RawTransfer {
	tokenAddr := t.Token.Address
	if tokenAddr == "" {
		tokenAddr = t.Token.AddressAlt
	}

	decimals := 18
	if d, err := strconv.Atoi(t.Token.DecimalsRaw); err == nil && d >= 0 {
		decimals = d
	}

	amount := 0.0
	if v, err := strconv.ParseFloat(t.Total.Value, 64); err == nil {
		scale := 1.0
		for i := 0; i < decimals; i++ {
			scale *= 10
		}
		amount = v / scale
	}

	symbol := t.Token.Symbol
	if symbol == "" {
		symbol = "UNKNOWN"
	}

	return model.RawTransfer{
		Timestamp:    parseExplorerTime(t.Timestamp),
		From:         t.From.Hash,
		To:           t.To.Hash,
		Amount:       amount,
		TokenSymbol:  symbol,
		TokenAddress: tokenAddr,
		TxHash:       t.TxHash,
		BlockNumber:  t.BlockNumber,
	}
}

func parseExplorerTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

func parseWei(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v / 1e18
}

func encodePageParams(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		switch v := params[k].(type) {
		case float64:
			// JSON numbers decode as float64; page cursors are integers.
			values.Set(k, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			values.Set(k, fmt.Sprint(v))
		}
	}
	return values.Encode()
}
