package relayer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
	"github.com/weightvote/weightvote-cli/internal/usecase"
	"golang.org/x/time/rate"
)

// Client is an encryption engine backed by a relayer HTTP service
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger

	initMu   sync.Mutex // serializes Initialize
	mu       sync.Mutex
	keyURL   *KeyURLResponse
	initDone bool
}

// KeyURLResponse describes where the network public key material lives
type KeyURLResponse struct {
	PublicKeyID string `json:"publicKeyId"`
	PublicKey   string `json:"publicKeyUrl"`
	CRSURL      string `json:"crsUrl,omitempty"`
}

type encryptRequest struct {
	ContractAddress string   `json:"contractAddress"`
	UserAddress     string   `json:"userAddress"`
	Values          []uint64 `json:"values"`
	Bits            int      `json:"bits"`
}

type encryptResponse struct {
	Handles    []string `json:"handles"`
	InputProof string   `json:"inputProof"`
}

type decryptRequest struct {
	CiphertextHandles []string `json:"ciphertextHandles"`
	ContractAddress   string   `json:"contractAddress"`
}

type decryptResponse struct {
	ClearValues           map[string]string `json:"clearValues"`
	AbiEncodedClearValues string            `json:"abiEncodedClearValues"`
	DecryptionProof       string            `json:"decryptionProof"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewClient creates a relayer client
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	timeout := 60 * time.Second
	limit := rate.Inf
	if cfg.Relayer != nil {
		if cfg.Relayer.Timeout > 0 {
			timeout = cfg.Relayer.Timeout
		}
		if cfg.Relayer.RequestsPerSec > 0 {
			limit = rate.Limit(cfg.Relayer.RequestsPerSec)
		}
	}

	baseURL := ""
	if cfg.Relayer != nil {
		baseURL = strings.TrimRight(cfg.Relayer.URL, "/")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		log:        log.With("component", "relayer"),
	}
}

// Initialize fetches the network key location. Once it has succeeded further
// calls return immediately; a failed attempt may be retried.
func (c *Client) Initialize(ctx context.Context) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()
	if c.ready() == nil {
		return nil
	}

	var keys KeyURLResponse
	if err := c.do(ctx, http.MethodGet, "/v1/keyurl", nil, &keys); err != nil {
		return fmt.Errorf("failed to fetch key url: %w", err)
	}
	c.mu.Lock()
	c.keyURL = &keys
	c.initDone = true
	c.mu.Unlock()
	c.log.Debug("relayer initialized", "public_key_id", keys.PublicKeyID)
	return nil
}

// Encrypt produces an encrypted 32-bit input bound to contract and caller
func (c *Client) Encrypt(ctx context.Context, contract, caller common.Address, value uint64) (*models.EncryptedInput, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	req := encryptRequest{
		ContractAddress: contract.Hex(),
		UserAddress:     caller.Hex(),
		Values:          []uint64{value},
		Bits:            32,
	}
	var resp encryptResponse
	if err := c.do(ctx, http.MethodPost, "/v1/encrypt", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Handles) != 1 {
		return nil, fmt.Errorf("expected 1 handle, got %d", len(resp.Handles))
	}

	handle, err := models.HexToHandle(resp.Handles[0])
	if err != nil {
		return nil, fmt.Errorf("invalid handle: %w", err)
	}
	proof, err := hexutil.Decode(resp.InputProof)
	if err != nil {
		return nil, fmt.Errorf("invalid input proof: %w", err)
	}
	return &models.EncryptedInput{Payload: handle, Proof: proof}, nil
}

// RequestDecryption asks the relayer for publicly verifiable clear values
func (c *Client) RequestDecryption(ctx context.Context, handles []models.Handle, contract common.Address) (*models.DecryptionProof, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	req := decryptRequest{ContractAddress: contract.Hex()}
	for _, h := range handles {
		req.CiphertextHandles = append(req.CiphertextHandles, h.Hex())
	}

	var resp decryptResponse
	if err := c.do(ctx, http.MethodPost, "/v1/public-decrypt", req, &resp); err != nil {
		return nil, err
	}

	out := &models.DecryptionProof{ClearValues: make(map[models.Handle]*big.Int, len(resp.ClearValues))}
	for rawHandle, rawValue := range resp.ClearValues {
		h, err := models.HexToHandle(rawHandle)
		if err != nil {
			return nil, fmt.Errorf("invalid handle in decryption result: %w", err)
		}
		v, ok := new(big.Int).SetString(rawValue, 0)
		if !ok {
			return nil, fmt.Errorf("invalid clear value %q", rawValue)
		}
		out.ClearValues[h] = v
	}

	var err error
	if out.EncodedClearValues, err = hexutil.Decode(resp.AbiEncodedClearValues); err != nil {
		return nil, fmt.Errorf("invalid encoded clear values: %w", err)
	}
	if out.Proof, err = hexutil.Decode(resp.DecryptionProof); err != nil {
		return nil, fmt.Errorf("invalid decryption proof: %w", err)
	}
	return out, nil
}

func (c *Client) ready() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initDone {
		return fmt.Errorf("relayer client is not initialized")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("relayer request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relayer request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("relayer error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("relayer error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Ensure the client implements the interface
var _ usecase.EncryptionEngine = (*Client)(nil)
