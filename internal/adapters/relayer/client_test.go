package relayer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

var (
	contractAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	callerAddr   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	handle       = "0x00000000000000000000000000000000000000000000000000000000000abc01"
)

type relayerStub struct {
	keyCalls     atomic.Int32
	failKeys     atomic.Bool
	holdKeys     chan struct{}
	lastEncrypt  encryptRequest
	lastDecrypt  decryptRequest
	decryptError bool
}

func (s *relayerStub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/keyurl", func(w http.ResponseWriter, r *http.Request) {
		s.keyCalls.Add(1)
		if s.holdKeys != nil {
			<-s.holdKeys
		}
		if s.failKeys.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("warming up"))
			return
		}
		_ = json.NewEncoder(w).Encode(KeyURLResponse{PublicKeyID: "key-1", PublicKey: "https://keys/1"})
	})
	mux.HandleFunc("/v1/encrypt", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&s.lastEncrypt))
		_ = json.NewEncoder(w).Encode(encryptResponse{Handles: []string{handle}, InputProof: "0xdeadbeef"})
	})
	mux.HandleFunc("/v1/public-decrypt", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&s.lastDecrypt))
		if s.decryptError {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(errorResponse{Message: "handle is not publicly decryptable"})
			return
		}
		_ = json.NewEncoder(w).Encode(decryptResponse{
			ClearValues:           map[string]string{handle: "42"},
			AbiEncodedClearValues: "0x000000000000000000000000000000000000000000000000000000000000002a",
			DecryptionProof:       "0x0102",
		})
	})
	return mux
}

func newTestClient(t *testing.T, stub *relayerStub) *Client {
	t.Helper()
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)
	cfg := &config.RuntimeConfig{Relayer: &config.Relayer{URL: srv.URL + "/"}}
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClientInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent once successful", func(t *testing.T) {
		stub := &relayerStub{}
		c := newTestClient(t, stub)

		require.NoError(t, c.Initialize(ctx))
		require.NoError(t, c.Initialize(ctx))
		assert.Equal(t, int32(1), stub.keyCalls.Load())
	})

	t.Run("failure can be retried", func(t *testing.T) {
		stub := &relayerStub{}
		stub.failKeys.Store(true)
		c := newTestClient(t, stub)

		err := c.Initialize(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
		assert.Contains(t, err.Error(), "warming up")

		stub.failKeys.Store(false)
		require.NoError(t, c.Initialize(ctx))
		assert.Equal(t, int32(2), stub.keyCalls.Load())
	})

	t.Run("operations require initialization", func(t *testing.T) {
		c := newTestClient(t, &relayerStub{})
		_, err := c.Encrypt(ctx, contractAddr, callerAddr, 1)
		assert.ErrorContains(t, err, "not initialized")
	})

	t.Run("operations fail fast while initialization is in flight", func(t *testing.T) {
		stub := &relayerStub{holdKeys: make(chan struct{})}
		c := newTestClient(t, stub)

		initErr := make(chan error, 1)
		go func() { initErr <- c.Initialize(ctx) }()
		require.Eventually(t, func() bool { return stub.keyCalls.Load() == 1 }, time.Second, time.Millisecond)

		encErr := make(chan error, 1)
		go func() {
			_, err := c.Encrypt(ctx, contractAddr, callerAddr, 1)
			encErr <- err
		}()
		select {
		case err := <-encErr:
			assert.ErrorContains(t, err, "not initialized")
		case <-time.After(time.Second):
			t.Fatal("Encrypt blocked behind Initialize")
		}

		close(stub.holdKeys)
		require.NoError(t, <-initErr)
		_, err := c.Encrypt(ctx, contractAddr, callerAddr, 1)
		require.NoError(t, err)
	})
}

func TestClientEncrypt(t *testing.T) {
	ctx := context.Background()
	stub := &relayerStub{}
	c := newTestClient(t, stub)
	require.NoError(t, c.Initialize(ctx))

	in, err := c.Encrypt(ctx, contractAddr, callerAddr, 42)
	require.NoError(t, err)

	expected, err := models.HexToHandle(handle)
	require.NoError(t, err)
	assert.Equal(t, expected, in.Payload)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, in.Proof)

	assert.Equal(t, contractAddr.Hex(), stub.lastEncrypt.ContractAddress)
	assert.Equal(t, callerAddr.Hex(), stub.lastEncrypt.UserAddress)
	assert.Equal(t, []uint64{42}, stub.lastEncrypt.Values)
	assert.Equal(t, 32, stub.lastEncrypt.Bits)
}

func TestClientRequestDecryption(t *testing.T) {
	ctx := context.Background()
	h, err := models.HexToHandle(handle)
	require.NoError(t, err)

	t.Run("returns clear values and proof", func(t *testing.T) {
		stub := &relayerStub{}
		c := newTestClient(t, stub)
		require.NoError(t, c.Initialize(ctx))

		proof, err := c.RequestDecryption(ctx, []models.Handle{h}, contractAddr)
		require.NoError(t, err)
		require.Contains(t, proof.ClearValues, h)
		assert.Equal(t, int64(42), proof.ClearValues[h].Int64())
		assert.Len(t, proof.EncodedClearValues, 32)
		assert.Equal(t, []byte{1, 2}, proof.Proof)
		assert.Equal(t, []string{h.Hex()}, stub.lastDecrypt.CiphertextHandles)
	})

	t.Run("relayer error message is surfaced", func(t *testing.T) {
		stub := &relayerStub{decryptError: true}
		c := newTestClient(t, stub)
		require.NoError(t, c.Initialize(ctx))

		_, err := c.RequestDecryption(ctx, []models.Handle{h}, contractAddr)
		assert.ErrorContains(t, err, "handle is not publicly decryptable")
	})
}
