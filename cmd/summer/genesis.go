// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/token"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// Genesis describes the bootstrap state of a solo instance.
type Genesis struct {
	Governor     string         `yaml:"governor"`
	StakingAsset string         `yaml:"stakingAsset"`
	Assets       []GenesisAsset `yaml:"assets"`
}

// GenesisAsset declares one fungible asset and its initial holders.
type GenesisAsset struct {
	Address  string            `yaml:"address"`
	Symbol   string            `yaml:"symbol"`
	Decimals *uint8            `yaml:"decimals"` // omitted for assets without a decimals query
	Balances map[string]string `yaml:"balances"`
}

func loadGenesis(path string) (*Genesis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read genesis file")
	}
	var gen Genesis
	if err := yaml.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrap(err, "failed to parse genesis file")
	}
	if gen.Governor == "" {
		return nil, errors.New("genesis: governor is required")
	}
	return &gen, nil
}

// apply registers assets and mints initial balances.
func (g *Genesis) apply(registry *token.Registry) error {
	for _, asset := range g.Assets {
		addr, err := summer.ParseAddress(asset.Address)
		if err != nil {
			return errors.WithMessagef(err, "genesis: asset %s", asset.Symbol)
		}
		if err := registry.Register(*addr, asset.Symbol, asset.Decimals); err != nil {
			return err
		}
		for holder, amount := range asset.Balances {
			holderAddr, err := summer.ParseAddress(holder)
			if err != nil {
				return errors.WithMessagef(err, "genesis: holder of %s", asset.Symbol)
			}
			value, ok := new(big.Int).SetString(amount, 10)
			if !ok {
				return errors.Errorf("genesis: invalid amount %q for %s", amount, asset.Symbol)
			}
			if err := registry.Mint(*addr, *holderAddr, value); err != nil {
				return err
			}
		}
	}
	return nil
}
