// Package chain holds the go-ethereum RPC client used to read the
// authoritative current token balance. Everything historical comes from the
// explorer; the node answers only point-in-time questions.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const erc20BalanceOfABIJSON = `[
  {"inputs": [{"internalType": "address", "name": "account", "type": "address"}], "name": "balanceOf", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

var (
	balanceOfABI    abi.ABI
	balanceOfOnce   sync.Once
	balanceOfABIErr error
)

func getBalanceOfABI() (abi.ABI, error) {
	balanceOfOnce.Do(func() {
		balanceOfABI, balanceOfABIErr = abi.JSON(strings.NewReader(erc20BalanceOfABIJSON))
	})
	return balanceOfABI, balanceOfABIErr
}

// Client wraps go-ethereum RPC and provides helper methods.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetChainID returns the chain ID.
func (c *Client) GetChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// LatestBlockNumber returns the latest block number.
func (c *Client) LatestBlockNumber(ctx context.Context) (uint64, error) {
	return c.ethClient.BlockNumber(ctx)
}

// CallContract performs an eth_call for a contract method.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return c.ethClient.CallContract(ctx, msg, blockNumber)
}

// TokenBalanceRaw reads the erc20 balance of owner at the latest block as a
// raw integer in token base units.
func (c *Client) TokenBalanceRaw(ctx context.Context, token, owner string) (*big.Int, error) {
	if !common.IsHexAddress(token) {
		return nil, fmt.Errorf("invalid token address: %s", token)
	}
	if !common.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid owner address: %s", owner)
	}

	balanceABI, err := getBalanceOfABI()
	if err != nil {
		return nil, err
	}

	data, err := balanceABI.Pack("balanceOf", common.HexToAddress(owner))
	if err != nil {
		return nil, fmt.Errorf("pack balanceOf: %w", err)
	}

	tokenAddr := common.HexToAddress(token)
	msg := ethereum.CallMsg{To: &tokenAddr, Data: data}
	resp, err := c.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call balanceOf: %w", err)
	}

	values, err := balanceABI.Unpack("balanceOf", resp)
	if err != nil {
		return nil, fmt.Errorf("unpack balanceOf: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("balanceOf return size %d", len(values))
	}
	bal, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf unexpected type %T", values[0])
	}
	return bal, nil
}

// TokenBalance reads the erc20 balance of owner scaled by the token's
// decimal count.
func (c *Client) TokenBalance(ctx context.Context, token, owner string, decimals int) (float64, error) {
	raw, err := c.TokenBalanceRaw(ctx, token, owner)
	if err != nil {
		return 0, err
	}

	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	scaled, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), scale).Float64()
	return scaled, nil
}
