// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import "github.com/vechain/restake/metrics"

var (
	metricInstructionCount    = metrics.LazyLoadCounterVec("program_instruction_count", []string{"kind", "status"})
	metricInstructionDuration = metrics.LazyLoadHistogramVec("program_instruction_duration_us", []string{"kind"}, metrics.BucketExecution)
	metricJournalHead         = metrics.LazyLoadGauge("program_journal_head")
)
