package keeper

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/committee/types"
)

// GetProposal returns a proposal by id
func (k Keeper) GetProposal(ctx context.Context, id uint64) (types.Proposal, bool) {
	bz := k.getStore(ctx).Get(types.ProposalKey(id))
	if bz == nil {
		return types.Proposal{}, false
	}

	var proposal types.Proposal
	if err := json.Unmarshal(bz, &proposal); err != nil {
		return types.Proposal{}, false
	}
	return proposal, true
}

func (k Keeper) setProposal(ctx context.Context, proposal types.Proposal) {
	bz, err := json.Marshal(proposal)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal proposal %d: %s", proposal.Id, err))
	}
	k.getStore(ctx).Set(types.ProposalKey(proposal.Id), bz)
}

func (k Keeper) deleteProposal(ctx context.Context, id uint64, creator string) {
	store := k.getStore(ctx)
	store.Delete(types.ProposalKey(id))
	store.Delete(types.CreatorKey(creator))
}

// getCreatorProposal returns the id of the creator's open proposal this
// round, if any.
func (k Keeper) getCreatorProposal(ctx context.Context, creator string) (uint64, bool) {
	bz := k.getStore(ctx).Get(types.CreatorKey(creator))
	if bz == nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(bz), true
}

func (k Keeper) setCreatorProposal(ctx context.Context, creator string, id uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	k.getStore(ctx).Set(types.CreatorKey(creator), bz)
}

func (k Keeper) nextProposalID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	id := uint64(1)
	if bz := store.Get(types.NextProposalIDKey); bz != nil {
		id = binary.BigEndian.Uint64(bz)
	}
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id+1)
	store.Set(types.NextProposalIDKey, bz)
	return id
}

// GetVote returns the proposal id a validator voted for this round, if
// any.
func (k Keeper) GetVote(ctx context.Context, voter string) (uint64, bool) {
	bz := k.getStore(ctx).Get(types.VoteKey(voter))
	if bz == nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(bz), true
}

func (k Keeper) setVote(ctx context.Context, voter string, id uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	k.getStore(ctx).Set(types.VoteKey(voter), bz)
}

func (k Keeper) clearVote(ctx context.Context, voter string) {
	k.getStore(ctx).Delete(types.VoteKey(voter))
}

// retractVote withdraws a voter's recorded vote and decrements the voted
// proposal's tally, keeping counts equal to the surviving vote records.
func (k Keeper) retractVote(ctx context.Context, voter string) {
	id, ok := k.GetVote(ctx, voter)
	if !ok {
		return
	}
	k.clearVote(ctx, voter)

	if proposal, found := k.GetProposal(ctx, id); found && proposal.Votes > 0 {
		proposal.Votes--
		k.setProposal(ctx, proposal)
	}
}

// clearProposalVotes deletes every vote record pointing at the given
// proposal. Used when a proposal is discarded outside a round advance.
func (k Keeper) clearProposalVotes(ctx context.Context, proposalID uint64) {
	store := k.getStore(ctx)
	iterator := store.Iterator(types.VoteKeyPrefix, storetypes.PrefixEndBytes(types.VoteKeyPrefix))
	var keys [][]byte
	for ; iterator.Valid(); iterator.Next() {
		if binary.BigEndian.Uint64(iterator.Value()) == proposalID {
			keys = append(keys, append([]byte(nil), iterator.Key()...))
		}
	}
	iterator.Close()
	for _, key := range keys {
		store.Delete(key)
	}
}

// clearRoundState discards every proposal, creator index and vote of the
// current round. Used on round advance and on lazy expiry reset.
func (k Keeper) clearRoundState(ctx context.Context) {
	store := k.getStore(ctx)
	for _, prefix := range [][]byte{types.ProposalKeyPrefix, types.CreatorKeyPrefix, types.VoteKeyPrefix} {
		iterator := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
		var keys [][]byte
		for ; iterator.Valid(); iterator.Next() {
			keys = append(keys, iterator.Key())
		}
		iterator.Close()
		for _, key := range keys {
			store.Delete(key)
		}
	}
}

// advanceRound moves to the next round: clears proposal and vote state,
// reselects the committee from a fresh seed and records the execution
// time.
func (k Keeper) advanceRound(ctx context.Context, seedMaterial []byte) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	k.clearRoundState(ctx)

	round := k.GetRound(ctx)
	round.Number++
	round.LastExecutionTime = sdkCtx.BlockTime().Unix()
	k.setRound(ctx, round)

	if _, err := k.SelectCommittee(ctx, seedMaterial); err != nil {
		return err
	}

	metrics().RoundsAdvanced.Inc()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRoundAdvanced,
			sdk.NewAttribute(types.AttributeKeyRound, fmt.Sprintf("%d", round.Number)),
		),
	)

	return nil
}

// resetExpiredRound performs the lazy cleanup of an expired round: stale
// proposals and votes are discarded, the committee is reselected, and
// the execution time is rebased so the resetting caller's proposal is
// not blocked by the minimum spacing check.
func (k Keeper) resetExpiredRound(ctx context.Context) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	k.clearRoundState(ctx)

	round := k.GetRound(ctx)
	round.Number++
	round.LastExecutionTime = sdkCtx.BlockTime().Unix() - round.UpdateInterval
	k.setRound(ctx, round)

	if _, err := k.SelectCommittee(ctx, nil); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRoundReset,
			sdk.NewAttribute(types.AttributeKeyRound, fmt.Sprintf("%d", round.Number)),
		),
	)

	return nil
}

// markActive bumps a validator's last-active round, feeding the
// availability bias in committee selection.
func (k Keeper) markActive(ctx context.Context, addr string) {
	info, found := k.GetValidator(ctx, addr)
	if !found {
		return
	}
	round := k.GetRound(ctx)
	if info.LastActiveRound < round.Number {
		info.LastActiveRound = round.Number
		k.setValidator(ctx, info)
	}
}

// CreateProposal stores a hash commitment for the current round. A
// committee member may propose once the minimum spacing has elapsed; if
// the round has expired, any registered validator may propose, which
// first triggers the lazy round reset.
func (k Keeper) CreateProposal(ctx context.Context, msg *types.MsgCreateProposal) (uint64, error) {
	if err := msg.ValidateBasic(); err != nil {
		return 0, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()
	round := k.GetRound(ctx)

	if round.Expired(now) {
		if !k.IsRegistered(ctx, msg.Creator) {
			return 0, types.ErrNotValidator.Wrapf("creator %s is not registered", msg.Creator)
		}
		if err := k.resetExpiredRound(ctx); err != nil {
			return 0, err
		}
		round = k.GetRound(ctx)
	} else if !k.IsCommitteeMember(ctx, msg.Creator) {
		return 0, types.ErrNotValidator.Wrapf("creator %s is not a committee member", msg.Creator)
	}

	if now < round.LastExecutionTime+round.UpdateInterval {
		return 0, types.ErrTooEarly.Wrapf("next proposal allowed at %d, now %d",
			round.LastExecutionTime+round.UpdateInterval, now)
	}
	if _, open := k.getCreatorProposal(ctx, msg.Creator); open {
		return 0, types.ErrAlreadySubmitted.Wrapf("creator %s", msg.Creator)
	}

	id := k.nextProposalID(ctx)
	k.setProposal(ctx, types.Proposal{
		Id:        id,
		Creator:   msg.Creator,
		Hash:      msg.Hash,
		Votes:     0,
		CreatedAt: now,
	})
	k.setCreatorProposal(ctx, msg.Creator, id)
	k.markActive(ctx, msg.Creator)

	metrics().ProposalsCreated.Inc()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProposalCreated,
			sdk.NewAttribute(types.AttributeKeyProposalID, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyCreator, msg.Creator),
			sdk.NewAttribute(types.AttributeKeyRound, fmt.Sprintf("%d", round.Number)),
		),
	)

	return id, nil
}

// Vote records a registered validator's single vote for this round.
func (k Keeper) Vote(ctx context.Context, msg *types.MsgVote) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	if !k.IsRegistered(ctx, msg.Voter) {
		return types.ErrNotValidator.Wrapf("voter %s is not registered", msg.Voter)
	}

	proposal, found := k.GetProposal(ctx, msg.ProposalId)
	if !found {
		return types.ErrInvalidProposalID.Wrapf("proposal %d", msg.ProposalId)
	}
	if proposal.Executed {
		return types.ErrInvalidProposalID.Wrapf("proposal %d already executed", msg.ProposalId)
	}
	if _, voted := k.GetVote(ctx, msg.Voter); voted {
		return types.ErrAlreadyVoted.Wrapf("voter %s", msg.Voter)
	}

	k.setVote(ctx, msg.Voter, msg.ProposalId)
	proposal.Votes++
	k.setProposal(ctx, proposal)
	k.markActive(ctx, msg.Voter)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProposalVoted,
			sdk.NewAttribute(types.AttributeKeyProposalID, fmt.Sprintf("%d", msg.ProposalId)),
			sdk.NewAttribute(types.AttributeKeyVoter, msg.Voter),
			sdk.NewAttribute(types.AttributeKeyVotes, fmt.Sprintf("%d", proposal.Votes)),
		),
	)

	return nil
}

// Execute reveals the payload behind a commitment and, if it checks out,
// applies the proposal: requested validators are removed, the approved
// voter set and the worker batch are handed to the distribution ledger,
// and the round advances.
//
// The executed flag is persisted before any external effect so a
// re-entrant second call observes the proposal as spent.
func (k Keeper) Execute(ctx context.Context, msg *types.MsgExecute) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	proposal, found := k.GetProposal(ctx, msg.ProposalId)
	if !found {
		return types.ErrInvalidProposalID.Wrapf("proposal %d", msg.ProposalId)
	}
	if proposal.Executed {
		return types.ErrInvalidProposalID.Wrapf("proposal %d already executed", msg.ProposalId)
	}
	if proposal.Creator != msg.Executor {
		return types.ErrNotCreator.Wrapf("proposal %d belongs to %s", msg.ProposalId, proposal.Creator)
	}

	params := k.GetParams(ctx)
	round := k.GetRound(ctx)
	required := types.RequiredVotes(len(round.Committee), params.ApprovalThresholdPercent)
	if proposal.Votes < required {
		return types.ErrInsufficientVotes.Wrapf("proposal %d has %d of %d required votes",
			msg.ProposalId, proposal.Votes, required)
	}

	revealed := types.ComputeProposalHash(msg.Payload)
	if !bytes.Equal(revealed, proposal.Hash) {
		return types.ErrDataMismatch.Wrapf("proposal %d", msg.ProposalId)
	}

	// Re-entrancy guard: spend the proposal before any external call.
	proposal.Executed = true
	k.setProposal(ctx, proposal)

	// Batch removal of validators named in the payload. Entries that
	// left the registry since the commitment was made are skipped.
	removed := 0
	for _, addr := range msg.Payload.RemoveValidators {
		if !k.IsRegistered(ctx, addr) {
			continue
		}
		k.removeFromRegistry(ctx, addr)
		removed++
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeValidatorRemoved,
				sdk.NewAttribute(types.AttributeKeyValidator, addr),
				sdk.NewAttribute(types.AttributeKeyProposalID, fmt.Sprintf("%d", msg.ProposalId)),
			),
		)
	}

	// The approved set: everyone whose recorded vote is this proposal.
	// Collected before the round advance wipes the vote table.
	approved := k.votersFor(ctx, msg.ProposalId)

	// Commit the worker batch under a Merkle root keyed to the ledger's
	// next distribution id.
	var root []byte
	totalCapacity := msg.Payload.TotalCapacity()
	if totalCapacity > 0 {
		nonce := k.rewardsKeeper.NextDistributionID(ctx)
		var err error
		root, err = claimRootForPayload(msg.Payload, nonce)
		if err != nil {
			return types.ErrDataMismatch.Wrap(err.Error())
		}
	}

	if err := k.advanceRound(ctx, proposal.Hash); err != nil {
		return err
	}
	k.markActive(ctx, msg.Executor)

	if _, err := k.rewardsKeeper.CreateDistribution(
		ctx, root, totalCapacity, approved,
		math.ZeroInt(), math.ZeroInt(), // job escrow (extra payments) is an external collaborator
		msg.Executor,
	); err != nil {
		return err
	}

	metrics().ProposalsExecuted.Inc()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProposalExecuted,
			sdk.NewAttribute(types.AttributeKeyProposalID, fmt.Sprintf("%d", msg.ProposalId)),
			sdk.NewAttribute(types.AttributeKeyCreator, msg.Executor),
			sdk.NewAttribute(types.AttributeKeyApprovedCount, fmt.Sprintf("%d", len(approved))),
			sdk.NewAttribute(types.AttributeKeyRemovedCount, fmt.Sprintf("%d", removed)),
		),
	)

	return nil
}

// votersFor returns the validators whose recorded vote equals the given
// proposal id, in registry order for determinism.
func (k Keeper) votersFor(ctx context.Context, proposalID uint64) []string {
	var approved []string
	for _, addr := range k.GetRegistry(ctx).Addresses {
		if id, ok := k.GetVote(ctx, addr); ok && id == proposalID {
			approved = append(approved, addr)
		}
	}
	return approved
}
