package main

import (
	"fmt"
	"os"

	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"

	"github.com/ores-network/gores/common"
	"github.com/ores-network/gores/tx"
)

// fileConfig is the TOML shape of --config. Empty fields keep the protocol
// defaults.
type fileConfig struct {
	SystemPackage  string `toml:"system_package"`
	AccountPackage string `toml:"account_package"`
}

func loadConfig(c *cli.Context) (tx.Config, error) {
	cfg := tx.DefaultConfig()
	path := c.String(configFlag.Name)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if fc.SystemPackage != "" {
		if cfg.SystemPackage, err = common.ParseAddress(fc.SystemPackage); err != nil {
			return cfg, fmt.Errorf("invalid system_package: %w", err)
		}
	}
	if fc.AccountPackage != "" {
		if cfg.AccountPackage, err = common.ParseAddress(fc.AccountPackage); err != nil {
			return cfg, fmt.Errorf("invalid account_package: %w", err)
		}
	}
	return cfg, nil
}
