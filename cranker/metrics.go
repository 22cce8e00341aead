// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cranker

import "github.com/vechain/restake/metrics"

var (
	metricCrankCount     = metrics.LazyLoadCounterVec("cranker_vault_update_count", []string{"status"})
	metricReclaimedCount = metrics.LazyLoadCounter("cranker_tracker_reclaimed_count")
)
