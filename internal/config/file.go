package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ProjectFileName is the per-project configuration file
const ProjectFileName = "wvote.toml"

// ProjectFile represents the raw wvote.toml structure
type ProjectFile struct {
	DefaultNetwork string                 `toml:"default_network"`
	Networks       map[string]NetworkTOML `toml:"networks"`
	Relayer        RelayerTOML            `toml:"relayer"`
	UI             UITOML                 `toml:"ui"`
	Wallet         WalletTOML             `toml:"wallet"`
}

// WalletTOML is the [wallet] table. Private keys are only read from the environment.
type WalletTOML struct {
	WatchAddress string `toml:"watch_address"`
}

// NetworkTOML is one [networks.<name>] table
type NetworkTOML struct {
	ChainID       uint64 `toml:"chain_id"`
	RPCURL        string `toml:"rpc_url"`
	Contract      string `toml:"contract"`
	Confirmations uint64 `toml:"confirmations"`
}

// RelayerTOML is the [relayer] table
type RelayerTOML struct {
	URL               string   `toml:"url"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	Timeout           duration `toml:"timeout"`
}

// UITOML is the [ui] table
type UITOML struct {
	SuccessClearDelay duration `toml:"success_clear_delay"`
	ErrorClearDelay   duration `toml:"error_clear_delay"`
	HistoryCapacity   int      `toml:"history_capacity"`
	RecentWindow      duration `toml:"recent_window"`
}

// duration decodes TOML strings like "2s"
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// loadEnvFiles loads .env files from the project root without overriding the
// process environment
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectFile parses wvote.toml, returning nil when it does not exist
func loadProjectFile(projectRoot string) (*ProjectFile, error) {
	path := filepath.Join(projectRoot, ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var raw ProjectFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	for name, n := range raw.Networks {
		n.RPCURL = os.ExpandEnv(n.RPCURL)
		n.Contract = os.ExpandEnv(n.Contract)
		raw.Networks[name] = n
	}
	raw.Relayer.URL = os.ExpandEnv(raw.Relayer.URL)

	return &raw, nil
}

// FindProjectRoot walks up from the current directory to find wvote.toml,
// falling back to the current directory.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}
