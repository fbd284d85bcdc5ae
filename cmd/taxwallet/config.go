package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nspcc-dev/taxwallet/wallet"
)

type fileConfig struct {
	StorePath string `toml:"store_path"`
	Owner     string `toml:"owner"`
	TaxRate   uint64 `toml:"tax_rate"`
}

// walletConfig is the resolved CLI configuration.
type walletConfig struct {
	StorePath  string
	Owner      wallet.Account
	TaxRate    uint64
	HasTaxRate bool
}

func loadConfig(path string) (walletConfig, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return walletConfig{}, fmt.Errorf("load wallet config: %w", err)
	}

	cfg := walletConfig{StorePath: "taxwallet.db"}

	if meta.IsDefined("store_path") {
		p := strings.TrimSpace(raw.StorePath)
		if p != "" {
			cfg.StorePath = p
		}
	}

	if !meta.IsDefined("owner") {
		return walletConfig{}, fmt.Errorf("wallet config: missing owner")
	}
	owner, err := wallet.ParseAccount(strings.TrimSpace(raw.Owner))
	if err != nil {
		return walletConfig{}, fmt.Errorf("wallet config: %w", err)
	}
	cfg.Owner = owner

	if meta.IsDefined("tax_rate") {
		if raw.TaxRate > wallet.MaxTaxRate {
			return walletConfig{}, fmt.Errorf("wallet config: tax rate %d out of range", raw.TaxRate)
		}
		cfg.TaxRate = raw.TaxRate
		cfg.HasTaxRate = true
	}

	return cfg, nil
}
