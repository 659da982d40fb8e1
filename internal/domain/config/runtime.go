package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weightvote/weightvote-cli/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and adapters and contains all resolved settings
type RuntimeConfig struct {
	// Ledger settings
	Network *Network

	// Wallet settings
	PrivateKey   string // hex, never logged
	WatchAddress string // read-only session when no key is set

	// Encryption engine settings
	Relayer *Relayer

	// Status and history behaviour
	UI UISettings

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Output         string
	Timeout        time.Duration
}

// Network represents the ledger endpoint and the voting contract
type Network struct {
	Name            string         `toml:"name" json:"name"`
	ChainID         uint64         `toml:"chain_id" json:"chainId"`
	RPCURL          string         `toml:"rpc_url" json:"rpcUrl"`
	ContractAddress common.Address `toml:"-" json:"contractAddress"`
	Confirmations   uint64         `toml:"confirmations" json:"confirmations"`
}

// Relayer represents the encryption engine endpoint
type Relayer struct {
	URL            string        `toml:"url" json:"url"`
	RequestsPerSec float64       `toml:"requests_per_second" json:"requestsPerSecond"`
	Timeout        time.Duration `toml:"-" json:"timeout"`
}

// UISettings tunes the transient status and history behaviour
type UISettings struct {
	SuccessClearDelay time.Duration
	ErrorClearDelay   time.Duration
	HistoryCapacity   int
	RecentWindow      time.Duration
}

// DefaultUISettings returns the stock status and history behaviour
func DefaultUISettings() UISettings {
	return UISettings{
		SuccessClearDelay: 2 * time.Second,
		ErrorClearDelay:   3 * time.Second,
		HistoryCapacity:   10,
		RecentWindow:      7 * 24 * time.Hour,
	}
}

// Validate checks that the configuration can reach the ledger and the relayer
func (c *RuntimeConfig) Validate() error {
	if c.Network == nil {
		return fmt.Errorf("%w: network is not configured", domain.ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(c.Network.RPCURL); err != nil {
		return fmt.Errorf("%w: rpc url %q: %v", domain.ErrInvalidConfig, c.Network.RPCURL, err)
	}
	if c.Network.ContractAddress == (common.Address{}) {
		return fmt.Errorf("%w: contract address is not set", domain.ErrInvalidConfig)
	}
	if c.Relayer == nil || c.Relayer.URL == "" {
		return fmt.Errorf("%w: relayer url is not set", domain.ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(c.Relayer.URL); err != nil {
		return fmt.Errorf("%w: relayer url %q: %v", domain.ErrInvalidConfig, c.Relayer.URL, err)
	}
	if c.UI.HistoryCapacity <= 0 {
		return fmt.Errorf("%w: history capacity must be positive", domain.ErrInvalidConfig)
	}
	return nil
}
