package gateway

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"walletScope/internal/lending"
	"walletScope/internal/model"
)

// LendingHistory is the subgraph view of one address: the per-event rows in
// the configured currency plus the user's lifetime counters.
type LendingHistory struct {
	HasActivity bool
	Events      []model.LendingEvent
	TxCount     int
	OrderCount  int
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// flexInt accepts both bare JSON numbers and quoted integer strings; the
// subgraph serializes BigInt as a string but Int as a number.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse subgraph int %q: %w", s, err)
	}
	*f = flexInt(v)
	return nil
}

type subgraphUser struct {
	CreatedAt        flexInt `json:"createdAt"`
	TransactionCount flexInt `json:"transactionCount"`
	OrderCount       flexInt `json:"orderCount"`
	Transactions     []struct {
		CreatedAt      flexInt `json:"createdAt"`
		Side           flexInt `json:"side"`
		Currency       string  `json:"currency"`
		Maturity       flexInt `json:"maturity"`
		FutureValue    string  `json:"futureValue"`
		ExecutionPrice string  `json:"executionPrice"`
	} `json:"transactions"`
}

type userResponse struct {
	Data struct {
		User *subgraphUser `json:"user"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

const userQuery = `query ($id: ID!) {
  user(id: $id) {
    createdAt
    transactionCount
    orderCount
    transactions(first: 500, orderBy: createdAt, orderDirection: desc) {
      createdAt
      side
      currency
      maturity
      futureValue
      executionPrice
    }
  }
}`

// Subgraph reads fixed-rate lending history from the protocol subgraph.
type Subgraph struct {
	client   *Client
	currency string
	log      *zap.Logger
}

// NewSubgraph takes the bytes32 currency identifier used to filter the
// user's transactions.
func NewSubgraph(client *Client, currency string) *Subgraph {
	return &Subgraph{client: client, currency: strings.ToLower(currency), log: client.log}
}

// FetchLendingHistory returns the address's lending events in the
// configured currency. An unknown user is not an error: it comes back as
// HasActivity false with no events.
func (s *Subgraph) FetchLendingHistory(ctx context.Context, address string) (LendingHistory, error) {
	req := graphQLRequest{
		Query:     userQuery,
		Variables: map[string]any{"id": strings.ToLower(address)},
	}

	var resp userResponse
	if err := s.client.postJSON(ctx, s.client.cfg.SubgraphURL, req, true, &resp); err != nil {
		return LendingHistory{}, fmt.Errorf("query lending subgraph: %w", err)
	}
	if len(resp.Errors) > 0 {
		return LendingHistory{}, fmt.Errorf("lending subgraph: %s", resp.Errors[0].Message)
	}

	user := resp.Data.User
	if user == nil {
		return LendingHistory{}, nil
	}

	history := LendingHistory{
		HasActivity: true,
		TxCount:     int(user.TransactionCount),
		OrderCount:  int(user.OrderCount),
	}

	for _, tx := range user.Transactions {
		if strings.ToLower(tx.Currency) != s.currency {
			continue
		}

		created := time.Unix(int64(tx.CreatedAt), 0).UTC()
		maturity := time.Unix(int64(tx.Maturity), 0).UTC()

		side := model.SideBorrow
		if tx.Side == 0 {
			side = model.SideLend
		}

		futureValue := parseTokenUnits(tx.FutureValue)
		price := parseTokenUnits(tx.ExecutionPrice)
		apr, daysToMaturity := lending.ComputeAPR(price, created, maturity)

		history.Events = append(history.Events, model.LendingEvent{
			Timestamp:      created,
			Side:           side,
			Amount:         futureValue,
			ExecutionPrice: price,
			APR:            apr,
			Maturity:       maturity,
			DaysToMaturity: daysToMaturity,
		})
	}

	s.log.Debug("fetched lending history",
		zap.String("address", address),
		zap.Int("events", len(history.Events)),
	)
	return history, nil
}

// parseTokenUnits converts an 18-decimal integer string to a float value.
func parseTokenUnits(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v / 1e18
}
