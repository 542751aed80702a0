package keeper

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/committee/types"
)

// seedStream yields deterministic pseudo-random uint64s from a 32-byte
// seed by hashing seed||counter. This is deterministic across nodes but
// not cryptographically unpredictable against a participant able to bias
// the block time or header hash.
type seedStream struct {
	seed    []byte
	counter uint64
}

func (s *seedStream) next() uint64 {
	h := sha256.New()
	h.Write(s.seed)
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, s.counter)
	h.Write(buf)
	s.counter++
	return binary.BigEndian.Uint64(h.Sum(nil)[:8])
}

// shuffle applies an in-place Fisher–Yates shuffle driven by the stream.
func (s *seedStream) shuffle(list []string) {
	for i := len(list) - 1; i > 0; i-- {
		j := int(s.next() % uint64(i+1))
		list[i], list[j] = list[j], list[i]
	}
}

// nextSeed rolls the committee seed forward from the previous seed, the
// block time, the round number and the block header hash, plus any
// caller-supplied material.
func nextSeed(prev []byte, blockTime int64, roundNumber uint64, headerHash, material []byte) []byte {
	h := sha256.New()
	h.Write(prev)
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(blockTime))
	h.Write(buf)
	binary.BigEndian.PutUint64(buf, roundNumber)
	h.Write(buf)
	h.Write(headerHash)
	h.Write(material)
	return h.Sum(nil)
}

// SelectCommittee reselects the committee for the current round from a
// freshly rolled seed and persists it. Recently active validators are
// drawn first, padding from the inactive remainder only when the active
// set is too small: availability is deliberately favored over
// incentive-neutral randomness.
func (k Keeper) SelectCommittee(ctx context.Context, seedMaterial []byte) ([]string, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	registry := k.GetRegistry(ctx)
	if len(registry.Addresses) == 0 {
		return nil, types.ErrInsufficientValidators.Wrap("registry is empty")
	}

	params := k.GetParams(ctx)
	round := k.GetRound(ctx)
	size := types.CommitteeSize(len(registry.Addresses))

	seed := nextSeed(round.Seed, sdkCtx.BlockTime().Unix(), round.Number, sdkCtx.HeaderHash(), seedMaterial)
	stream := &seedStream{seed: seed}

	// Partition by recent activity.
	activeFloor := uint64(0)
	if round.Number > params.ActivityWindowRounds {
		activeFloor = round.Number - params.ActivityWindowRounds
	}
	var active, inactive []string
	for _, addr := range registry.Addresses {
		info, found := k.GetValidator(ctx, addr)
		if found && info.LastActiveRound >= activeFloor {
			active = append(active, addr)
		} else {
			inactive = append(inactive, addr)
		}
	}

	stream.shuffle(active)
	committee := active
	if len(committee) > size {
		committee = committee[:size]
	} else if len(committee) < size {
		stream.shuffle(inactive)
		need := size - len(committee)
		if need > len(inactive) {
			need = len(inactive)
		}
		committee = append(committee, inactive[:need]...)
	}

	round.Committee = committee
	round.Seed = seed
	k.setRound(ctx, round)

	metrics().CommitteeSize.Set(float64(len(committee)))

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCommitteeSelected,
			sdk.NewAttribute(types.AttributeKeyRound, fmt.Sprintf("%d", round.Number)),
			sdk.NewAttribute(types.AttributeKeyCommitteeSize, fmt.Sprintf("%d", len(committee))),
		),
	)

	return committee, nil
}
