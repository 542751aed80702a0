package keeper

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/rewards/types"
)

// GetLatestDistributionID returns the id of the most recently created
// distribution, or zero if none exists yet.
func (k Keeper) GetLatestDistributionID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.LatestDistributionKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) setLatestDistributionID(ctx context.Context, id uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	k.getStore(ctx).Set(types.LatestDistributionKey, bz)
}

// NextDistributionID returns the id the next distribution will be stored
// under. The round state machine uses it as the Merkle leaf nonce when
// committing a worker batch.
func (k Keeper) NextDistributionID(ctx context.Context) uint64 {
	return k.GetLatestDistributionID(ctx) + 1
}

// GetDistribution returns a distribution by id.
func (k Keeper) GetDistribution(ctx context.Context, id uint64) (types.Distribution, bool) {
	bz := k.getStore(ctx).Get(types.DistributionKey(id))
	if bz == nil {
		return types.Distribution{}, false
	}

	var dist types.Distribution
	if err := json.Unmarshal(bz, &dist); err != nil {
		return types.Distribution{}, false
	}
	return dist, true
}

func (k Keeper) setDistribution(ctx context.Context, dist types.Distribution) {
	bz, err := json.Marshal(dist)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal distribution %d: %s", dist.Id, err))
	}
	k.getStore(ctx).Set(types.DistributionKey(dist.Id), bz)
}

// GetAllDistributions returns every retained distribution, for genesis
// export and invariant checks.
func (k Keeper) GetAllDistributions(ctx context.Context) []types.Distribution {
	store := k.getStore(ctx)
	iterator := store.Iterator(types.DistributionKeyPrefix, storetypes.PrefixEndBytes(types.DistributionKeyPrefix))
	defer iterator.Close()

	var dists []types.Distribution
	for ; iterator.Valid(); iterator.Next() {
		var dist types.Distribution
		if err := json.Unmarshal(iterator.Value(), &dist); err != nil {
			continue
		}
		dists = append(dists, dist)
	}
	return dists
}

// CreateDistribution settles one executed proposal round: it mints the
// scheduled emission, pays the dao and validator shares immediately, and
// commits the worker share under a Merkle root for lazy claiming.
//
// Only the round state machine calls this; the call is rate-limited to
// one distribution per interval. A zero totalCapacity pays the immediate
// shares but stores no claimable batch, and the returned id is zero.
//
// The validator share is split evenly across approvedValidators; the
// integer remainder ("dust") goes entirely to dustRecipient so no unit
// is lost to division.
func (k Keeper) CreateDistribution(
	ctx context.Context,
	root []byte,
	totalCapacity uint64,
	approvedValidators []string,
	extraPrimary, extraSecondary math.Int,
	dustRecipient string,
) (uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	params := k.GetParams(ctx)
	state := k.GetEmissionState(ctx)
	now := sdkCtx.BlockTime().Unix()

	if now < state.LastDistributionAt+state.IntervalSeconds {
		return 0, types.ErrTooEarly.Wrapf("next distribution allowed at %d, now %d",
			state.LastDistributionAt+state.IntervalSeconds, now)
	}
	if totalCapacity > 0 && len(root) != types.MerkleRootSize {
		return 0, types.ErrInvalidRoot.Wrapf("expected %d bytes, got %d", types.MerkleRootSize, len(root))
	}
	if extraPrimary.IsNil() {
		extraPrimary = math.ZeroInt()
	}
	if extraSecondary.IsNil() {
		extraSecondary = math.ZeroInt()
	}

	// Mint the scheduled emission into the module account. Extra
	// payments are already escrowed there by the job intake.
	emission := k.CurrentEmission(ctx)
	if rate, err := k.EmissionRate(ctx).Float64(); err == nil {
		metrics().EmissionRate.Set(rate)
	}
	if emission.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(params.PrimaryDenom, emission))
		if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, coins); err != nil {
			return 0, err
		}
	}

	poolPrimary := emission.Add(extraPrimary)
	poolSecondary := extraSecondary

	daoPrimary := poolPrimary.MulRaw(int64(params.DaoSharePercent)).QuoRaw(100)
	daoSecondary := poolSecondary.MulRaw(int64(params.DaoSharePercent)).QuoRaw(100)
	validatorPrimary := poolPrimary.MulRaw(int64(params.ValidatorSharePercent)).QuoRaw(100)
	validatorSecondary := poolSecondary.MulRaw(int64(params.ValidatorSharePercent)).QuoRaw(100)
	workerPrimary := poolPrimary.Sub(daoPrimary).Sub(validatorPrimary)
	workerSecondary := poolSecondary.Sub(daoSecondary).Sub(validatorSecondary)

	if err := k.payDaoShare(ctx, params, daoPrimary, daoSecondary); err != nil {
		return 0, err
	}
	if err := k.payValidatorShares(ctx, params, validatorPrimary, validatorSecondary, approvedValidators, dustRecipient); err != nil {
		return 0, err
	}

	state.LastDistributionAt = now
	k.setEmissionState(ctx, state)

	if totalCapacity == 0 {
		// Nothing claimable; the worker share stays in the module
		// account until a later round carries real capacity.
		k.Logger(sdkCtx).Info("distribution skipped, zero capacity",
			"worker_primary", workerPrimary.String())
		return 0, nil
	}

	id := k.GetLatestDistributionID(ctx) + 1
	dist := types.Distribution{
		Id:              id,
		MerkleRoot:      root,
		WorkerPrimary:   workerPrimary,
		WorkerSecondary: workerSecondary,
		TotalCapacity:   totalCapacity,
		CreatedAt:       now,
	}
	k.setDistribution(ctx, dist)
	k.setLatestDistributionID(ctx, id)
	k.evictExpired(ctx, id, params.RetentionWindow)

	metrics().DistributionsCreated.Inc()
	metrics().LatestDistributionID.Set(float64(id))

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDistributionCreated,
			sdk.NewAttribute(types.AttributeKeyDistributionID, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyMerkleRoot, hex.EncodeToString(root)),
			sdk.NewAttribute(types.AttributeKeyTotalCapacity, fmt.Sprintf("%d", totalCapacity)),
			sdk.NewAttribute(types.AttributeKeyWorkerPrimary, workerPrimary.String()),
			sdk.NewAttribute(types.AttributeKeyWorkerSecondary, workerSecondary.String()),
		),
	)

	return id, nil
}

// payDaoShare sends the dao cut to the treasury. With no treasury
// configured the share stays in the module account for governance to
// withdraw later.
func (k Keeper) payDaoShare(ctx context.Context, params types.Params, primary, secondary math.Int) error {
	coins := sdk.NewCoins(
		sdk.NewCoin(params.PrimaryDenom, primary),
		sdk.NewCoin(params.SecondaryDenom, secondary),
	)
	if coins.IsZero() {
		return nil
	}
	if params.TreasuryAddress == "" {
		return nil
	}

	treasury, err := sdk.AccAddressFromBech32(params.TreasuryAddress)
	if err != nil {
		return err
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, treasury, coins); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDaoSharePaid,
			sdk.NewAttribute(types.AttributeKeyRecipient, params.TreasuryAddress),
			sdk.NewAttribute(types.AttributeKeyAmount, coins.String()),
		),
	)
	return nil
}

// payValidatorShares splits the validator cut evenly, routing the
// division remainder to dustRecipient. sum(shares) + dust equals the
// validator share exactly.
func (k Keeper) payValidatorShares(
	ctx context.Context,
	params types.Params,
	primary, secondary math.Int,
	approved []string,
	dustRecipient string,
) error {
	if primary.IsZero() && secondary.IsZero() {
		return nil
	}

	payouts := make(map[string]sdk.Coins, len(approved)+1)
	order := make([]string, 0, len(approved)+1)
	add := func(addr string, coins sdk.Coins) {
		if coins.IsZero() || addr == "" {
			return
		}
		if _, ok := payouts[addr]; !ok {
			order = append(order, addr)
		}
		payouts[addr] = payouts[addr].Add(coins...)
	}

	n := int64(len(approved))
	dustPrimary, dustSecondary := primary, secondary
	if n > 0 {
		perPrimary := primary.QuoRaw(n)
		perSecondary := secondary.QuoRaw(n)
		dustPrimary = primary.Sub(perPrimary.MulRaw(n))
		dustSecondary = secondary.Sub(perSecondary.MulRaw(n))

		per := sdk.NewCoins(
			sdk.NewCoin(params.PrimaryDenom, perPrimary),
			sdk.NewCoin(params.SecondaryDenom, perSecondary),
		)
		for _, v := range approved {
			add(v, per)
		}
	}
	add(dustRecipient, sdk.NewCoins(
		sdk.NewCoin(params.PrimaryDenom, dustPrimary),
		sdk.NewCoin(params.SecondaryDenom, dustSecondary),
	))

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	for _, addr := range order {
		recipient, err := sdk.AccAddressFromBech32(addr)
		if err != nil {
			return err
		}
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, payouts[addr]); err != nil {
			return err
		}
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeValidatorSharePaid,
				sdk.NewAttribute(types.AttributeKeyRecipient, addr),
				sdk.NewAttribute(types.AttributeKeyAmount, payouts[addr].String()),
			),
		)
	}
	return nil
}

// evictExpired deletes the distribution that just fell out of the
// retention window, along with its claim flags.
func (k Keeper) evictExpired(ctx context.Context, latest uint64, window uint64) {
	if latest <= window {
		return
	}
	evict := latest - window
	store := k.getStore(ctx)

	if !store.Has(types.DistributionKey(evict)) {
		return
	}
	store.Delete(types.DistributionKey(evict))

	// Free the consumed claim flags as well.
	prefix := types.ClaimKey(evict, "")
	iterator := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	defer iterator.Close()
	var keys [][]byte
	for ; iterator.Valid(); iterator.Next() {
		keys = append(keys, iterator.Key())
	}
	for _, key := range keys {
		store.Delete(key)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDistributionEvicted,
			sdk.NewAttribute(types.AttributeKeyEvictedID, fmt.Sprintf("%d", evict)),
		),
	)
}
