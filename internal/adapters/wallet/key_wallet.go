package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/weightvote/weightvote-cli/internal/domain"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// KeyWallet is a wallet session backed by a local private key, or by a bare
// address when only read access is configured.
type KeyWallet struct {
	key     *ecdsa.PrivateKey
	account common.Address

	mu        sync.Mutex
	connected bool
	subs      map[int]func(bool)
	nextSub   int
}

// NewKeyWallet creates a wallet from the configured private key or watch address
func NewKeyWallet(cfg *config.RuntimeConfig) (*KeyWallet, error) {
	w := &KeyWallet{subs: make(map[int]func(bool))}

	if raw := strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x"); raw != "" {
		key, err := crypto.HexToECDSA(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: private key: %v", domain.ErrInvalidConfig, err)
		}
		w.key = key
		w.account = crypto.PubkeyToAddress(key.PublicKey)
		return w, nil
	}

	if cfg.WatchAddress != "" {
		if !common.IsHexAddress(cfg.WatchAddress) {
			return nil, fmt.Errorf("%w: watch address %q", domain.ErrInvalidConfig, cfg.WatchAddress)
		}
		w.account = common.HexToAddress(cfg.WatchAddress)
	}

	return w, nil
}

// Account returns the session account, the zero address when none is configured
func (w *KeyWallet) Account() common.Address {
	return w.account
}

// Connected reports whether the session is connected
func (w *KeyWallet) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

// CanSign reports whether the wallet holds a signing key
func (w *KeyWallet) CanSign() bool {
	return w.key != nil
}

// Connect opens the session and notifies subscribers
func (w *KeyWallet) Connect(ctx context.Context) error {
	if w.account == (common.Address{}) {
		return fmt.Errorf("%w: configure a private key or a watch address", domain.ErrNotConnected)
	}
	w.setConnected(true)
	return nil
}

// Disconnect closes the session and notifies subscribers
func (w *KeyWallet) Disconnect() {
	w.setConnected(false)
}

// Subscribe registers fn for connection changes
func (w *KeyWallet) Subscribe(fn func(connected bool)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// TransactOpts builds signing options for the given chain
func (w *KeyWallet) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	if w.key == nil || !w.Connected() {
		return nil, domain.ErrNoSigner
	}
	signer := types.LatestSignerForChainID(chainID)
	key := w.key
	from := w.account
	return &bind.TransactOpts{
		From:    from,
		Context: ctx,
		Signer: func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if addr != from {
				return nil, fmt.Errorf("not authorized to sign for %s", addr.Hex())
			}
			return types.SignTx(tx, signer, key)
		},
	}, nil
}

func (w *KeyWallet) setConnected(connected bool) {
	w.mu.Lock()
	if w.connected == connected {
		w.mu.Unlock()
		return
	}
	w.connected = connected
	subs := make([]func(bool), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	for _, fn := range subs {
		fn(connected)
	}
}

// Ensure the adapter implements the interface
var _ usecase.Wallet = (*KeyWallet)(nil)
