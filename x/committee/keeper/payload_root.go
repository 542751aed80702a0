package keeper

import (
	rewardstypes "github.com/attest-chain/attest/x/rewards/types"

	"github.com/attest-chain/attest/x/committee/types"
)

// claimRootForPayload builds the distribution Merkle root over the
// revealed worker/capacity pairs, using the ledger's next distribution
// id as the leaf nonce. The ledger verifies claims against this exact
// encoding, so the root is never trusted from outside the executed
// payload.
func claimRootForPayload(payload types.ProposalPayload, nonce uint64) ([]byte, error) {
	return rewardstypes.BuildClaimRoot(payload.Workers, payload.Capacities, nonce)
}
