// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package storage provides Solidity-like typed storage primitives for the
// protocol contracts: slot-addressed mappings, arrays and scalar words,
// all persisted through the shared state.
package storage

import (
	"github.com/OasisDEX/summer-earn-protocol-sub010/state"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// Context binds a contract address to the state it stores into.
type Context struct {
	address summer.Address
	state   *state.State
}

// NewContext creates a storage context for the contract at address.
func NewContext(address summer.Address, st *state.State) *Context {
	return &Context{
		address: address,
		state:   st,
	}
}

// Address returns the contract address of the context.
func (c *Context) Address() summer.Address {
	return c.address
}

// State returns the underlying state.
func (c *Context) State() *state.State {
	return c.state
}

// NameToSlot derives a storage slot from a declaration name.
func NameToSlot(name string) summer.Bytes32 {
	return summer.BytesToBytes32([]byte(name))
}
