package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/committee/types"
)

// GetRegistry returns the validator registry arena
func (k Keeper) GetRegistry(ctx context.Context) types.Registry {
	bz := k.getStore(ctx).Get(types.RegistryKey)
	if bz == nil {
		return types.Registry{}
	}

	var registry types.Registry
	if err := json.Unmarshal(bz, &registry); err != nil {
		return types.Registry{}
	}
	return registry
}

func (k Keeper) setRegistry(ctx context.Context, registry types.Registry) {
	bz, err := json.Marshal(registry)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal registry: %s", err))
	}
	k.getStore(ctx).Set(types.RegistryKey, bz)
}

// GetValidator returns the registry record for an address
func (k Keeper) GetValidator(ctx context.Context, addr string) (types.ValidatorInfo, bool) {
	bz := k.getStore(ctx).Get(types.ValidatorKey(addr))
	if bz == nil {
		return types.ValidatorInfo{}, false
	}

	var info types.ValidatorInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return types.ValidatorInfo{}, false
	}
	return info, true
}

func (k Keeper) setValidator(ctx context.Context, info types.ValidatorInfo) {
	bz, err := json.Marshal(info)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal validator %s: %s", info.Address, err))
	}
	k.getStore(ctx).Set(types.ValidatorKey(info.Address), bz)
}

// IsRegistered reports whether addr is in the registry
func (k Keeper) IsRegistered(ctx context.Context, addr string) bool {
	return k.getStore(ctx).Has(types.ValidatorKey(addr))
}

// RegisterValidator adds a collateralized candidate to the registry.
func (k Keeper) RegisterValidator(ctx context.Context, msg *types.MsgRegisterValidator) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	candidate, err := sdk.AccAddressFromBech32(msg.Candidate)
	if err != nil {
		return types.ErrNotValidator.Wrapf("invalid candidate address: %s", err)
	}

	if !k.collateralKeeper.IsEligible(ctx, candidate) {
		return types.ErrNotEligible.Wrapf("candidate %s", msg.Candidate)
	}
	if k.IsRegistered(ctx, msg.Candidate) {
		return types.ErrAlreadyRegistered.Wrapf("candidate %s", msg.Candidate)
	}

	registry := k.GetRegistry(ctx)
	index := uint64(len(registry.Addresses))
	registry.Addresses = append(registry.Addresses, msg.Candidate)
	k.setRegistry(ctx, registry)

	round := k.GetRound(ctx)
	k.setValidator(ctx, types.ValidatorInfo{
		Address:         msg.Candidate,
		Index:           index,
		RegisteredAt:    sdkCtx.BlockTime().Unix(),
		LastActiveRound: round.Number,
	})

	metrics().RegistrySize.Set(float64(len(registry.Addresses)))

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeValidatorRegistered,
			sdk.NewAttribute(types.AttributeKeyValidator, msg.Candidate),
			sdk.NewAttribute(types.AttributeKeyRegistrySize, fmt.Sprintf("%d", len(registry.Addresses))),
		),
	)

	return nil
}

// DeregisterValidator removes a validator from the registry via
// swap-with-last-and-truncate, and clears any outstanding vote or open
// proposal for that identity. The validator is also dropped from the
// current committee so membership stays a subset of the registry.
func (k Keeper) DeregisterValidator(ctx context.Context, msg *types.MsgDeregisterValidator) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	if !k.IsRegistered(ctx, msg.Candidate) {
		return types.ErrNotRegistered.Wrapf("candidate %s", msg.Candidate)
	}

	k.removeFromRegistry(ctx, msg.Candidate)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeValidatorDeregistered,
			sdk.NewAttribute(types.AttributeKeyValidator, msg.Candidate),
		),
	)

	return nil
}

// removeFromRegistry performs the arena removal plus all dependent state
// cleanup. Callers have already verified membership.
func (k Keeper) removeFromRegistry(ctx context.Context, addr string) {
	store := k.getStore(ctx)
	info, found := k.GetValidator(ctx, addr)
	if !found {
		return
	}

	registry := k.GetRegistry(ctx)
	last := len(registry.Addresses) - 1
	slot := int(info.Index)

	// Swap the last entry into the freed slot and fix its index record.
	if slot != last {
		moved := registry.Addresses[last]
		registry.Addresses[slot] = moved
		if movedInfo, ok := k.GetValidator(ctx, moved); ok {
			movedInfo.Index = info.Index
			k.setValidator(ctx, movedInfo)
		}
	}
	registry.Addresses = registry.Addresses[:last]
	k.setRegistry(ctx, registry)
	store.Delete(types.ValidatorKey(addr))

	// Retract the outstanding vote, if any, so the voted proposal does
	// not keep counting a voter that no longer exists.
	k.retractVote(ctx, addr)

	// Discard the validator's open proposal together with the votes it
	// collected, freeing those voters for the rest of the round.
	if id, ok := k.getCreatorProposal(ctx, addr); ok {
		k.clearProposalVotes(ctx, id)
		k.deleteProposal(ctx, id, addr)
	}

	// Keep committee ⊆ registry.
	round := k.GetRound(ctx)
	for i, member := range round.Committee {
		if member == addr {
			round.Committee = append(round.Committee[:i], round.Committee[i+1:]...)
			k.setRound(ctx, round)
			break
		}
	}

	metrics().RegistrySize.Set(float64(len(registry.Addresses)))
}
