package adapters

import (
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/wire"
	"github.com/weightvote/weightvote-cli/internal/adapters/interactive"
	"github.com/weightvote/weightvote-cli/internal/adapters/ledger"
	"github.com/weightvote/weightvote-cli/internal/adapters/relayer"
	"github.com/weightvote/weightvote-cli/internal/adapters/wallet"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// ProvideClock provides the wall clock
func ProvideClock() clock.Clock {
	return clock.New()
}

// ProvideLedgerAdapter provides the ledger adapter over a dialed RPC client
func ProvideLedgerAdapter(client *ethclient.Client, w *wallet.KeyWallet, cfg *config.RuntimeConfig, clk clock.Clock, log *slog.Logger) *ledger.Adapter {
	return ledger.NewAdapter(client, w, cfg, clk, log)
}

// WalletSet provides the key-backed wallet session
var WalletSet = wire.NewSet(
	wallet.NewKeyWallet,
	wire.Bind(new(usecase.Wallet), new(*wallet.KeyWallet)),
	wire.Bind(new(usecase.SessionWallet), new(*wallet.KeyWallet)),
)

// LedgerSet provides ledger-based implementations
var LedgerSet = wire.NewSet(
	ledger.Dial,
	ProvideLedgerAdapter,
	wire.Bind(new(usecase.LedgerReader), new(*ledger.Adapter)),
	wire.Bind(new(usecase.WriteAccess), new(*ledger.Adapter)),
)

// RelayerSet provides the encryption engine client
var RelayerSet = wire.NewSet(
	relayer.NewClient,
	wire.Bind(new(usecase.EncryptionEngine), new(*relayer.Client)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideClock,
	WalletSet,
	LedgerSet,
	RelayerSet,
	InteractiveSet,
)
