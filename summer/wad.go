// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package summer

import "math/big"

// wad is the fixed-point scaling factor (10^18) used throughout reward
// rate and accumulator arithmetic to retain precision in integer division.
var wad = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// WAD returns a fresh copy of the 10^18 scaling factor.
func WAD() *big.Int {
	return new(big.Int).Set(wad)
}

// ToWad scales n up by 10^18.
func ToWad(n *big.Int) *big.Int {
	return new(big.Int).Mul(n, wad)
}

// WadMul multiplies two WAD-scaled integers, rounding down.
func WadMul(a, b *big.Int) *big.Int {
	p := new(big.Int).Mul(a, b)
	return p.Div(p, wad)
}

// WadDiv divides a by b with WAD precision, rounding down.
// Panics if b is zero, callers must guard.
func WadDiv(a, b *big.Int) *big.Int {
	p := new(big.Int).Mul(a, wad)
	return p.Div(p, b)
}
