// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/reverts"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/storage"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// The reward token registry keeps registered tokens in a dense storage
// array plus an identity→index mapping: O(1) existence check, O(1)
// append, O(1) swap-remove. Iteration order is not stable across
// removals.

func (s *store) TokenCount() (uint64, error) {
	count, err := s.tokenList.Len()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get token count")
	}
	return count, nil
}

func (s *store) TokenByIndex(i uint64) (summer.Address, error) {
	token, err := s.tokenList.Get(i)
	if err != nil {
		if errors.Is(err, storage.ErrIndexOutOfBounds) {
			count, _ := s.tokenList.Len()
			return summer.Address{}, reverts.Wrap(ErrIndexOutOfBounds, "index %d, count %d", i, count)
		}
		return summer.Address{}, errors.Wrap(err, "failed to get token by index")
	}
	return token, nil
}

// TokenIterator walks the registered tokens.
func (s *store) TokenIterator(callback func(token summer.Address) error) error {
	return s.tokenList.Iter(func(_ uint64, token summer.Address) error {
		return callback(token)
	})
}

// AppendToken adds a newly registered token to the ordered list.
func (s *store) AppendToken(token summer.Address) error {
	count, err := s.tokenList.Len()
	if err != nil {
		return errors.Wrap(err, "failed to get token count")
	}
	if err := s.tokenList.Append(token); err != nil {
		return errors.Wrap(err, "failed to append token")
	}
	return s.tokenIndex.Set(token, new(big.Int).SetUint64(count+1))
}

// RemoveToken swap-removes a token from the ordered list and fixes up the
// moved element's index entry.
func (s *store) RemoveToken(token summer.Address) error {
	indexPlusOne, err := s.tokenIndex.Get(token)
	if err != nil {
		return errors.Wrap(err, "failed to get token index")
	}
	if indexPlusOne.Sign() == 0 {
		return reverts.Wrap(ErrRewardTokenDoesNotExist, "token %s", token)
	}
	index := indexPlusOne.Uint64() - 1
	moved, err := s.tokenList.SwapRemove(index)
	if err != nil {
		return errors.Wrap(err, "failed to swap-remove token")
	}
	if moved != nil {
		if err := s.tokenIndex.Set(*moved, new(big.Int).SetUint64(index+1)); err != nil {
			return errors.Wrap(err, "failed to update moved token index")
		}
	}
	return s.tokenIndex.Delete(token)
}
