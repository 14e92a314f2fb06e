package registry

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"walletScope/internal/model"
)

// Registry holds static pool and router address tables. Lookups are
// case-insensitive; pools are consulted before routers and the first match
// wins.
type Registry struct {
	pools   map[string]string
	routers map[string]string
}

// New builds a Registry from name->address tables. Invalid addresses are
// rejected so a config typo surfaces at startup instead of as silent
// missed tags.
func New(pools, routers map[string]string) (*Registry, error) {
	r := &Registry{
		pools:   make(map[string]string, len(pools)),
		routers: make(map[string]string, len(routers)),
	}
	for name, addr := range pools {
		key, err := normalizeAddress(addr)
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", name, err)
		}
		r.pools[key] = name
	}
	for name, addr := range routers {
		key, err := normalizeAddress(addr)
		if err != nil {
			return nil, fmt.Errorf("router %s: %w", name, err)
		}
		r.routers[key] = name
	}
	return r, nil
}

// Tag returns the counterparty tag for a transfer between from and to.
// At most one tag is returned.
func (r *Registry) Tag(from, to string) model.CounterpartyTag {
	fromKey := strings.ToLower(strings.TrimSpace(from))
	toKey := strings.ToLower(strings.TrimSpace(to))

	if name, ok := r.pools[fromKey]; ok {
		return model.CounterpartyTag("pool:" + name)
	}
	if name, ok := r.pools[toKey]; ok {
		return model.CounterpartyTag("pool:" + name)
	}
	if name, ok := r.routers[fromKey]; ok {
		return model.CounterpartyTag("router:" + name)
	}
	if name, ok := r.routers[toKey]; ok {
		return model.CounterpartyTag("router:" + name)
	}
	return model.TagNone
}

// RouterName returns the router name for a transaction target address, if
// the address is a known router.
func (r *Registry) RouterName(to string) (string, bool) {
	name, ok := r.routers[strings.ToLower(strings.TrimSpace(to))]
	return name, ok
}

func normalizeAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("invalid address: %s", addr)
	}
	return strings.ToLower(common.HexToAddress(addr).Hex()), nil
}
