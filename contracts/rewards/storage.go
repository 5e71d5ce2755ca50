// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/storage"
	"github.com/OasisDEX/summer-earn-protocol-sub010/state"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

var (
	slotRecords      = storage.NameToSlot("reward-records")
	slotTokenList    = storage.NameToSlot("reward-token-list")
	slotTokenIndex   = storage.NameToSlot("reward-token-index")
	slotTotalSupply  = storage.NameToSlot("staked-total-supply")
	slotBalances     = storage.NameToSlot("staked-balances")
	slotUserPaid     = storage.NameToSlot("user-reward-per-token-paid")
	slotAccrued      = storage.NameToSlot("user-accrued-rewards")
	slotStakingToken = storage.NameToSlot("staking-token")
)

// userKey addresses per-(token, account) reward state.
type userKey struct {
	token   summer.Address
	account summer.Address
}

func (k userKey) Bytes() []byte {
	return append(k.token.Bytes(), k.account.Bytes()...)
}

// store is the root storage of the staking rewards manager.
type store struct {
	context *storage.Context

	records     *storage.Mapping[summer.Address, *Record]
	tokenList   *storage.Array[summer.Address]
	tokenIndex  *storage.Mapping[summer.Address, *big.Int] // index+1, 0 means absent
	totalSupply *storage.Uint256
	balances    *storage.Mapping[summer.Address, *big.Int]
	userPaid    *storage.Mapping[userKey, *big.Int]
	accrued     *storage.Mapping[userKey, *big.Int]
}

func newStore(addr summer.Address, st *state.State) *store {
	context := storage.NewContext(addr, st)
	return &store{
		context:     context,
		records:     storage.NewMapping[summer.Address, *Record](context, slotRecords),
		tokenList:   storage.NewArray[summer.Address](context, slotTokenList),
		tokenIndex:  storage.NewMapping[summer.Address, *big.Int](context, slotTokenIndex),
		totalSupply: storage.NewUint256(context, slotTotalSupply),
		balances:    storage.NewMapping[summer.Address, *big.Int](context, slotBalances),
		userPaid:    storage.NewMapping[userKey, *big.Int](context, slotUserPaid),
		accrued:     storage.NewMapping[userKey, *big.Int](context, slotAccrued),
	}
}

func (s *store) GetRecord(token summer.Address) (*Record, error) {
	record, err := s.records.Get(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward record")
	}
	return record.normalize(), nil
}

func (s *store) SetRecord(token summer.Address, record *Record) error {
	if err := s.records.Set(token, record); err != nil {
		return errors.Wrap(err, "failed to set reward record")
	}
	return nil
}

func (s *store) DeleteRecord(token summer.Address) error {
	if err := s.records.Delete(token); err != nil {
		return errors.Wrap(err, "failed to delete reward record")
	}
	return nil
}

func (s *store) GetStakedBalance(account summer.Address) (*big.Int, error) {
	balance, err := s.balances.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get staked balance")
	}
	return balance, nil
}

func (s *store) SetStakedBalance(account summer.Address, balance *big.Int) error {
	if err := s.balances.Set(account, balance); err != nil {
		return errors.Wrap(err, "failed to set staked balance")
	}
	return nil
}

func (s *store) GetAccrued(token, account summer.Address) (*big.Int, error) {
	accrued, err := s.accrued.Get(userKey{token, account})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get accrued rewards")
	}
	return accrued, nil
}

func (s *store) SetAccrued(token, account summer.Address, amount *big.Int) error {
	if err := s.accrued.Set(userKey{token, account}, amount); err != nil {
		return errors.Wrap(err, "failed to set accrued rewards")
	}
	return nil
}

func (s *store) GetUserPaid(token, account summer.Address) (*big.Int, error) {
	paid, err := s.userPaid.Get(userKey{token, account})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paid accumulator snapshot")
	}
	return paid, nil
}

func (s *store) SetUserPaid(token, account summer.Address, value *big.Int) error {
	if err := s.userPaid.Set(userKey{token, account}, value); err != nil {
		return errors.Wrap(err, "failed to set paid accumulator snapshot")
	}
	return nil
}

// StakingToken returns the bound staking asset, ok is false before binding.
func (s *store) StakingToken() (summer.Address, bool) {
	word := s.context.State().GetStorage(s.context.Address(), slotStakingToken)
	addr := summer.BytesToAddress(word.Bytes())
	return addr, !addr.IsZero()
}

func (s *store) SetStakingToken(asset summer.Address) {
	s.context.State().SetStorage(s.context.Address(), slotStakingToken, summer.BytesToBytes32(asset.Bytes()))
}
