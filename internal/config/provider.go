package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/weightvote/weightvote-cli/internal/domain"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
)

// EnvPrefix prefixes every environment override, e.g. WVOTE_RPC_URL
const EnvPrefix = "WVOTE"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	file, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}
	if file == nil {
		file = &ProjectFile{}
	}

	cfg := &config.RuntimeConfig{
		PrivateKey:     v.GetString("private_key"),
		WatchAddress:   firstNonEmpty(v.GetString("watch_address"), file.Wallet.WatchAddress),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Output:         v.GetString("output"),
		Timeout:        v.GetDuration("timeout"),
		UI:             resolveUI(file.UI),
	}
	if cfg.Output == "json" {
		cfg.JSON = true
	}

	network, err := resolveNetwork(v, file)
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	cfg.Relayer = &config.Relayer{
		URL:            firstNonEmpty(v.GetString("relayer_url"), file.Relayer.URL),
		RequestsPerSec: file.Relayer.RequestsPerSecond,
		Timeout:        file.Relayer.Timeout.Duration,
	}
	if v.IsSet("relayer_rps") {
		cfg.Relayer.RequestsPerSec = v.GetFloat64("relayer_rps")
	}

	return cfg, nil
}

// resolveNetwork merges the selected [networks.<name>] table with overrides
func resolveNetwork(v *viper.Viper, file *ProjectFile) (*config.Network, error) {
	name := firstNonEmpty(v.GetString("network"), file.DefaultNetwork)

	var entry NetworkTOML
	if name != "" {
		var ok bool
		entry, ok = file.Networks[name]
		// a network may be given entirely through flags or env
		if !ok && v.GetString("rpc_url") == "" {
			return nil, fmt.Errorf("%w: network '%s' not found in %s [networks]", domain.ErrInvalidConfig, name, ProjectFileName)
		}
	}

	network := &config.Network{
		Name:          name,
		ChainID:       entry.ChainID,
		RPCURL:        firstNonEmpty(v.GetString("rpc_url"), entry.RPCURL),
		Confirmations: entry.Confirmations,
	}
	if v.IsSet("chain_id") {
		network.ChainID = v.GetUint64("chain_id")
	}
	if v.IsSet("confirmations") {
		network.Confirmations = v.GetUint64("confirmations")
	}

	contract := firstNonEmpty(v.GetString("contract"), entry.Contract)
	if contract != "" {
		if !common.IsHexAddress(contract) {
			return nil, fmt.Errorf("%w: contract address %q", domain.ErrInvalidConfig, contract)
		}
		network.ContractAddress = common.HexToAddress(contract)
	}
	return network, nil
}

func resolveUI(raw UITOML) config.UISettings {
	ui := config.DefaultUISettings()
	if raw.SuccessClearDelay.Duration > 0 {
		ui.SuccessClearDelay = raw.SuccessClearDelay.Duration
	}
	if raw.ErrorClearDelay.Duration > 0 {
		ui.ErrorClearDelay = raw.ErrorClearDelay.Duration
	}
	if raw.HistoryCapacity > 0 {
		ui.HistoryCapacity = raw.HistoryCapacity
	}
	if raw.RecentWindow.Duration > 0 {
		ui.RecentWindow = raw.RecentWindow.Duration
	}
	return ui
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("output", "table")
	v.SetDefault("project_root", projectRoot)

	// keys never set by a flag still resolve from the environment
	for _, key := range []string{"private_key", "watch_address", "chain_id", "confirmations", "relayer_rps"} {
		_ = v.BindEnv(key)
	}

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
			if err != nil {
				panic(err)
			}
		})
	}

	return v
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
