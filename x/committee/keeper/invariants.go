package keeper

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/committee/types"
)

// RegisterInvariants registers all committee module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "committee-subset", CommitteeSubsetInvariant(k))
	ir.RegisterRoute(types.ModuleName, "registry-index", RegistryIndexInvariant(k))
	ir.RegisterRoute(types.ModuleName, "vote-consistency", VoteConsistencyInvariant(k))
}

// AllInvariants runs all invariants of the committee module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := CommitteeSubsetInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = RegistryIndexInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return VoteConsistencyInvariant(k)(ctx)
	}
}

// CommitteeSubsetInvariant checks that every committee member is a
// registered validator.
func CommitteeSubsetInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, member := range k.GetRound(ctx).Committee {
			if !k.IsRegistered(ctx, member) {
				return sdk.FormatInvariant(types.ModuleName, "committee-subset",
					fmt.Sprintf("committee member %s is not registered", member)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "committee-subset", "committee is a subset of the registry"), false
	}
}

// RegistryIndexInvariant checks that the arena slots and the per-validator
// index records agree.
func RegistryIndexInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		registry := k.GetRegistry(ctx)
		for i, addr := range registry.Addresses {
			info, found := k.GetValidator(ctx, addr)
			if !found {
				return sdk.FormatInvariant(types.ModuleName, "registry-index",
					fmt.Sprintf("registry slot %d (%s) has no validator record", i, addr)), true
			}
			if info.Index != uint64(i) {
				return sdk.FormatInvariant(types.ModuleName, "registry-index",
					fmt.Sprintf("validator %s records index %d but sits in slot %d", addr, info.Index, i)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "registry-index", "arena indexes consistent"), false
	}
}

// VoteConsistencyInvariant checks that every vote points at a live
// proposal and that per-proposal vote counts match the vote records.
func VoteConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		store := ctx.KVStore(k.storeKey)

		counts := make(map[uint64]uint64)
		iterator := store.Iterator(types.VoteKeyPrefix, storetypes.PrefixEndBytes(types.VoteKeyPrefix))
		for ; iterator.Valid(); iterator.Next() {
			id := binary.BigEndian.Uint64(iterator.Value())
			if _, found := k.GetProposal(ctx, id); !found {
				iterator.Close()
				return sdk.FormatInvariant(types.ModuleName, "vote-consistency",
					fmt.Sprintf("vote references missing proposal %d", id)), true
			}
			counts[id]++
		}
		iterator.Close()

		iterator = store.Iterator(types.ProposalKeyPrefix, storetypes.PrefixEndBytes(types.ProposalKeyPrefix))
		defer iterator.Close()
		for ; iterator.Valid(); iterator.Next() {
			var proposal types.Proposal
			if err := json.Unmarshal(iterator.Value(), &proposal); err != nil {
				return sdk.FormatInvariant(types.ModuleName, "vote-consistency",
					fmt.Sprintf("unreadable proposal record: %v", err)), true
			}
			if proposal.Votes != counts[proposal.Id] {
				return sdk.FormatInvariant(types.ModuleName, "vote-consistency",
					fmt.Sprintf("proposal %d counts %d votes, found %d records",
						proposal.Id, proposal.Votes, counts[proposal.Id])), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "vote-consistency", "vote records consistent"), false
	}
}
