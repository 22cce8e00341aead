// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"sync/atomic"

	"github.com/vechain/restake/restake"
)

// DevAccountCount is the number of pre-funded development accounts.
const DevAccountCount = 10

// DevFunding is the balance each dev account holds of every dev mint.
const DevFunding = 1_000_000_000

var devAccounts atomic.Value

// DevAccounts returns the pre-funded accounts of the devnet.
func DevAccounts() []restake.Pubkey {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]restake.Pubkey)
	}
	accs := make([]restake.Pubkey, DevAccountCount)
	for i := range accs {
		accs[i] = restake.DeriveAddress([]byte("dev-account"), []byte(fmt.Sprint(i)))
	}
	devAccounts.Store(accs)
	return accs
}

// DevMint is the supported token of the devnet.
var DevMint = restake.DeriveAddress([]byte("dev-mint"))

// NewDevnet creates the genesis for a single node development network. The
// first dev account is the config admin.
func NewDevnet() *Genesis {
	accs := DevAccounts()
	balances := make([]Balance, len(accs))
	for i, a := range accs {
		balances[i] = Balance{Owner: a, Amount: DevFunding}
	}
	return &Genesis{
		LaunchTime: 1735689600, // 2025-01-01T00:00:00Z
		Config: Config{
			Admin:            accs[0],
			EpochLength:      32,
			ProgramFeeWallet: accs[0],
		},
		Mints: []Mint{{
			Address:   DevMint,
			Authority: accs[0],
			Decimals:  9,
			Balances:  balances,
		}},
	}
}
