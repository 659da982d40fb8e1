package app

import (
	"github.com/spf13/viper"
	"github.com/weightvote/weightvote-cli/internal/config"
	domainconfig "github.com/weightvote/weightvote-cli/internal/domain/config"
)

// ProvideRuntimeConfig resolves and validates the runtime configuration
func ProvideRuntimeConfig(v *viper.Viper) (*domainconfig.RuntimeConfig, error) {
	cfg, err := config.Provider(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
