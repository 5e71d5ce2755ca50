// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/OasisDEX/summer-earn-protocol-sub010/metrics"
)

var (
	metricOpCount = metrics.LazyLoad(func() metrics.CountVecMeter {
		return metrics.CounterVec("rewards_op_count", []string{"op", "outcome"})
	})
	metricRewardPaidCount = metrics.LazyLoad(func() metrics.CountVecMeter {
		return metrics.CounterVec("rewards_paid_count", []string{"token"})
	})
	metricTotalStakedGauge = metrics.LazyLoad(func() metrics.GaugeMeter {
		return metrics.Gauge("rewards_total_staked_wei")
	})
)

func countOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "revert"
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome})
}
