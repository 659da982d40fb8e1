package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weightvote/weightvote-cli/internal/domain"
)

const projectTOML = `
default_network = "sepolia"

[networks.sepolia]
chain_id = 11155111
rpc_url = "${TEST_SEPOLIA_RPC}"
contract = "0x1111111111111111111111111111111111111111"
confirmations = 2

[networks.local]
chain_id = 31337
rpc_url = "http://127.0.0.1:8545"
contract = "0x3333333333333333333333333333333333333333"

[relayer]
url = "https://relayer.example.org"
requests_per_second = 4
timeout = "45s"

[ui]
success_clear_delay = "1s"
history_capacity = 5

[wallet]
watch_address = "0x2222222222222222222222222222222222222222"
`

func writeProject(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(contents), 0644))
	return dir
}

func TestProvider(t *testing.T) {
	t.Run("project file with env expansion", func(t *testing.T) {
		t.Setenv("TEST_SEPOLIA_RPC", "https://rpc.sepolia.example.org")
		dir := writeProject(t, projectTOML)

		cfg, err := Provider(SetupViper(dir, nil))
		require.NoError(t, err)

		require.NotNil(t, cfg.Network)
		assert.Equal(t, "sepolia", cfg.Network.Name)
		assert.Equal(t, uint64(11155111), cfg.Network.ChainID)
		assert.Equal(t, "https://rpc.sepolia.example.org", cfg.Network.RPCURL)
		assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), cfg.Network.ContractAddress)
		assert.Equal(t, uint64(2), cfg.Network.Confirmations)

		assert.Equal(t, "https://relayer.example.org", cfg.Relayer.URL)
		assert.Equal(t, 4.0, cfg.Relayer.RequestsPerSec)
		assert.Equal(t, 45*time.Second, cfg.Relayer.Timeout)

		assert.Equal(t, time.Second, cfg.UI.SuccessClearDelay)
		assert.Equal(t, 3*time.Second, cfg.UI.ErrorClearDelay)
		assert.Equal(t, 5, cfg.UI.HistoryCapacity)
		assert.Equal(t, "0x2222222222222222222222222222222222222222", cfg.WatchAddress)
		assert.Equal(t, 5*time.Minute, cfg.Timeout)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("network flag selects another table", func(t *testing.T) {
		dir := writeProject(t, projectTOML)
		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().String("network", "", "")
		require.NoError(t, cmd.Flags().Set("network", "local"))

		cfg, err := Provider(SetupViper(dir, cmd))
		require.NoError(t, err)
		assert.Equal(t, "local", cfg.Network.Name)
		assert.Equal(t, uint64(31337), cfg.Network.ChainID)
		assert.Equal(t, common.HexToAddress("0x3333333333333333333333333333333333333333"), cfg.Network.ContractAddress)
	})

	t.Run("environment overrides", func(t *testing.T) {
		dir := writeProject(t, projectTOML)
		t.Setenv("WVOTE_RPC_URL", "http://localhost:9545")
		t.Setenv("WVOTE_PRIVATE_KEY", "0xabc")
		t.Setenv("WVOTE_CHAIN_ID", "1337")

		cfg, err := Provider(SetupViper(dir, nil))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9545", cfg.Network.RPCURL)
		assert.Equal(t, uint64(1337), cfg.Network.ChainID)
		assert.Equal(t, "0xabc", cfg.PrivateKey)
	})

	t.Run("dotenv file is loaded", func(t *testing.T) {
		dir := writeProject(t, projectTOML)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEST_SEPOLIA_RPC=https://from-dotenv.example.org\n"), 0644))
		t.Setenv("TEST_SEPOLIA_RPC", "")
		os.Unsetenv("TEST_SEPOLIA_RPC")

		cfg, err := Provider(SetupViper(dir, nil))
		require.NoError(t, err)
		assert.Equal(t, "https://from-dotenv.example.org", cfg.Network.RPCURL)
	})

	t.Run("unknown network", func(t *testing.T) {
		dir := writeProject(t, projectTOML)
		t.Setenv("WVOTE_NETWORK", "mainnet")

		_, err := Provider(SetupViper(dir, nil))
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("invalid contract address", func(t *testing.T) {
		dir := writeProject(t, `
[networks.bad]
rpc_url = "http://127.0.0.1:8545"
contract = "not-an-address"
`)
		t.Setenv("WVOTE_NETWORK", "bad")

		_, err := Provider(SetupViper(dir, nil))
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("no project file", func(t *testing.T) {
		cfg, err := Provider(SetupViper(t.TempDir(), nil))
		require.NoError(t, err)
		assert.Equal(t, "", cfg.Network.Name)
		assert.Error(t, cfg.Validate())
	})

	t.Run("json output", func(t *testing.T) {
		t.Setenv("WVOTE_OUTPUT", "json")
		cfg, err := Provider(SetupViper(t.TempDir(), nil))
		require.NoError(t, err)
		assert.True(t, cfg.JSON)
	})
}
