// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params implements the governed protocol parameter store. The
// governor address itself is stored alongside the numeric parameters;
// privileged contract operations check callers against it.
package params

import (
	"math/big"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/reverts"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/storage"
	"github.com/OasisDEX/summer-earn-protocol-sub010/state"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// ErrNotGovernor is returned when a restricted operation is attempted by
// an account other than the current governor.
var ErrNotGovernor = reverts.New("caller is not the governor")

type slotKey summer.Bytes32

func (k slotKey) Bytes() []byte { return summer.Bytes32(k).Bytes() }

// Params binder of the protocol parameter store.
type Params struct {
	context *storage.Context
	values  *storage.Mapping[slotKey, *big.Int]
}

// New creates the parameter store at addr.
func New(addr summer.Address, st *state.State) *Params {
	context := storage.NewContext(addr, st)
	return &Params{
		context: context,
		values:  storage.NewMapping[slotKey, *big.Int](context, storage.NameToSlot("params-values")),
	}
}

// Initialize sets the governor once at bootstrap. Further governor changes
// go through Set by the current governor.
func (p *Params) Initialize(governor summer.Address) {
	p.context.State().SetStorage(p.context.Address(), storage.NameToSlot("params-governor"), summer.BytesToBytes32(governor.Bytes()))
}

// Governor returns the current governor address.
func (p *Params) Governor() summer.Address {
	word := p.context.State().GetStorage(p.context.Address(), storage.NameToSlot("params-governor"))
	return summer.BytesToAddress(word.Bytes())
}

// CheckGovernor returns ErrNotGovernor unless actor is the governor.
func (p *Params) CheckGovernor(actor summer.Address) error {
	if governor := p.Governor(); actor != governor {
		return reverts.Wrap(ErrNotGovernor, "caller %s, governor %s", actor, governor)
	}
	return nil
}

// SetGovernor hands governance to a new address. Restricted to the
// current governor.
func (p *Params) SetGovernor(actor, governor summer.Address) error {
	if err := p.CheckGovernor(actor); err != nil {
		return err
	}
	p.Initialize(governor)
	return nil
}

// Get returns the value of a parameter, zero if unset.
func (p *Params) Get(key summer.Bytes32) (*big.Int, error) {
	value, err := p.values.Get(slotKey(key))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return big.NewInt(0), nil
	}
	return value, nil
}

// Set stores a parameter value. Restricted to the governor.
func (p *Params) Set(actor summer.Address, key summer.Bytes32, value *big.Int) error {
	if err := p.CheckGovernor(actor); err != nil {
		return err
	}
	return p.values.Set(slotKey(key), value)
}
