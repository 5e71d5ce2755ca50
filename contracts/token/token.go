// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible asset ledgers consumed by the
// staking and reward contracts: balance/transfer/transferFrom semantics
// with an optional decimals capability per asset. Assets that never
// declared a decimal count still work; callers needing decimals must
// handle the capability being absent.
package token

import (
	"math/big"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/reverts"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/storage"
	"github.com/OasisDEX/summer-earn-protocol-sub010/state"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

var (
	ErrAssetNotRegistered     = reverts.New("asset not registered")
	ErrAssetAlreadyRegistered = reverts.New("asset already registered")
	ErrInsufficientBalance    = reverts.New("insufficient balance")
	ErrInsufficientAllowance  = reverts.New("insufficient allowance")
	ErrNegativeAmount         = reverts.New("amount cannot be negative")
)

var (
	slotAssets     = storage.NameToSlot("token-assets")
	slotSupplies   = storage.NameToSlot("token-supplies")
	slotBalances   = storage.NameToSlot("token-balances")
	slotAllowances = storage.NameToSlot("token-allowances")
)

// Asset is the per-asset metadata record.
type Asset struct {
	Symbol      string
	Registered  bool
	HasDecimals bool
	Decimals    uint8
}

// IsEmpty returns whether the entry can be treated as empty.
func (a *Asset) IsEmpty() bool {
	return a == nil || !a.Registered
}

type holderKey struct {
	asset  summer.Address
	holder summer.Address
}

func (k holderKey) Bytes() []byte {
	return append(k.asset.Bytes(), k.holder.Bytes()...)
}

type allowanceKey struct {
	asset   summer.Address
	owner   summer.Address
	spender summer.Address
}

func (k allowanceKey) Bytes() []byte {
	b := append(k.asset.Bytes(), k.owner.Bytes()...)
	return append(b, k.spender.Bytes()...)
}

// Registry manages every fungible asset ledger of the protocol.
type Registry struct {
	context    *storage.Context
	assets     *storage.Mapping[summer.Address, *Asset]
	supplies   *storage.Mapping[summer.Address, *big.Int]
	balances   *storage.Mapping[holderKey, *big.Int]
	allowances *storage.Mapping[allowanceKey, *big.Int]
}

// New creates the asset registry at addr.
func New(addr summer.Address, st *state.State) *Registry {
	context := storage.NewContext(addr, st)
	return &Registry{
		context:    context,
		assets:     storage.NewMapping[summer.Address, *Asset](context, slotAssets),
		supplies:   storage.NewMapping[summer.Address, *big.Int](context, slotSupplies),
		balances:   storage.NewMapping[holderKey, *big.Int](context, slotBalances),
		allowances: storage.NewMapping[allowanceKey, *big.Int](context, slotAllowances),
	}
}

// Register declares an asset. decimals may be nil for assets that do not
// expose a decimal count.
func (r *Registry) Register(asset summer.Address, symbol string, decimals *uint8) error {
	existing, err := r.assets.Get(asset)
	if err != nil {
		return err
	}
	if !existing.IsEmpty() {
		return reverts.Wrap(ErrAssetAlreadyRegistered, "asset %s", asset)
	}
	record := &Asset{Symbol: symbol, Registered: true}
	if decimals != nil {
		record.HasDecimals = true
		record.Decimals = *decimals
	}
	return r.assets.Set(asset, record)
}

// Exists returns whether the asset is registered.
func (r *Registry) Exists(asset summer.Address) (bool, error) {
	record, err := r.assets.Get(asset)
	if err != nil {
		return false, err
	}
	return !record.IsEmpty(), nil
}

// Get returns the asset metadata record.
func (r *Registry) Get(asset summer.Address) (*Asset, error) {
	record, err := r.assets.Get(asset)
	if err != nil {
		return nil, err
	}
	if record.IsEmpty() {
		return nil, reverts.Wrap(ErrAssetNotRegistered, "asset %s", asset)
	}
	return record, nil
}

// Decimals is the capability query for an asset's decimal count. ok is
// false when the asset never declared one.
func (r *Registry) Decimals(asset summer.Address) (decimals uint8, ok bool, err error) {
	record, err := r.Get(asset)
	if err != nil {
		return 0, false, err
	}
	return record.Decimals, record.HasDecimals, nil
}

// TotalSupply returns the minted supply of the asset.
func (r *Registry) TotalSupply(asset summer.Address) (*big.Int, error) {
	supply, err := r.supplies.Get(asset)
	if err != nil {
		return nil, err
	}
	return supply, nil
}

// BalanceOf returns the holder's balance of the asset.
func (r *Registry) BalanceOf(asset, holder summer.Address) (*big.Int, error) {
	balance, err := r.balances.Get(holderKey{asset, holder})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// Mint creates amount units of the asset for the holder. Used by genesis
// bootstrap and tests; there is no burn.
func (r *Registry) Mint(asset, holder summer.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if _, err := r.Get(asset); err != nil {
		return err
	}
	balance, err := r.BalanceOf(asset, holder)
	if err != nil {
		return err
	}
	if err := r.balances.Set(holderKey{asset, holder}, new(big.Int).Add(balance, amount)); err != nil {
		return err
	}
	supply, err := r.TotalSupply(asset)
	if err != nil {
		return err
	}
	return r.supplies.Set(asset, new(big.Int).Add(supply, amount))
}

// Transfer moves amount of the asset from one holder to another.
func (r *Registry) Transfer(asset, from, to summer.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if _, err := r.Get(asset); err != nil {
		return err
	}
	fromBalance, err := r.BalanceOf(asset, from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return reverts.Wrap(ErrInsufficientBalance, "asset %s holder %s balance %s, need %s", asset, from, fromBalance, amount)
	}
	if err := r.balances.Set(holderKey{asset, from}, new(big.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	toBalance, err := r.BalanceOf(asset, to)
	if err != nil {
		return err
	}
	return r.balances.Set(holderKey{asset, to}, new(big.Int).Add(toBalance, amount))
}

// Approve lets spender move up to amount of owner's asset via TransferFrom.
func (r *Registry) Approve(asset, owner, spender summer.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if _, err := r.Get(asset); err != nil {
		return err
	}
	return r.allowances.Set(allowanceKey{asset, owner, spender}, amount)
}

// Allowance returns the remaining amount spender may move from owner.
func (r *Registry) Allowance(asset, owner, spender summer.Address) (*big.Int, error) {
	allowance, err := r.allowances.Get(allowanceKey{asset, owner, spender})
	if err != nil {
		return nil, err
	}
	return allowance, nil
}

// TransferFrom moves amount of the asset from owner to recipient on
// spender's authority, spending allowance.
func (r *Registry) TransferFrom(asset, spender, owner, recipient summer.Address, amount *big.Int) error {
	allowance, err := r.Allowance(asset, owner, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return reverts.Wrap(ErrInsufficientAllowance, "asset %s owner %s spender %s allowance %s, need %s", asset, owner, spender, allowance, amount)
	}
	if err := r.Transfer(asset, owner, recipient, amount); err != nil {
		return err
	}
	return r.allowances.Set(allowanceKey{asset, owner, spender}, new(big.Int).Sub(allowance, amount))
}
