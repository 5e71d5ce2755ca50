// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package summer

import "math/big"

// Keys of governed protocol parameters.
var (
	// KeyGovernor the address allowed to fund reward streams, change
	// durations and retire reward tokens.
	KeyGovernor = BytesToBytes32([]byte("governor"))

	// KeyDustFallback the residual-balance tolerance applied when retiring a
	// reward token whose decimal count cannot be determined.
	KeyDustFallback = BytesToBytes32([]byte("dust-fallback"))
)

// DustDivisor divides one whole token unit to derive the dust threshold
// permitted when retiring a reward token (10^-5 of one unit).
var DustDivisor = big.NewInt(100_000)

// InitialDustFallback is the conservative threshold used for assets that do
// not expose a decimals query. It assumes the smallest common decimal count
// (6) so that higher-precision assets are never retired with meaningful
// balances left behind.
var InitialDustFallback = big.NewInt(10)
